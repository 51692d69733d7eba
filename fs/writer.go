// Package fs saves action results as markdown files.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/referent"
	"gopkg.in/yaml.v3"
)

// maxSlugLength caps the slug so file names stay portable.
const maxSlugLength = 80

// hashLength is the number of hex digits of the URL hash in a slug.
const hashLength = 8

// Slug converts an article URL to a file name stem: the host and last path
// segment for readability, followed by a hash of the whole URL so distinct
// articles never share a file.
// Example: https://Example.com/blog/My_Post.html → example-com-my-post-html-<hash>
func Slug(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", referent.Errorf(referent.EINVALID, "cannot derive file name from %q", rawURL)
	}

	parts := []string{u.Hostname()}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if last := segments[len(segments)-1]; last != "" {
		parts = append(parts, last)
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.Join(parts, "-")) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	stem := []rune(strings.Trim(b.String(), "-"))
	if limit := maxSlugLength - hashLength - 1; len(stem) > limit {
		stem = stem[:limit]
	}
	if len(stem) == 0 {
		return "", referent.Errorf(referent.EINVALID, "cannot derive file name from %q", rawURL)
	}
	return strings.TrimRight(string(stem), "-") + "-" + urlHash(u), nil
}

// urlHash hashes u with the scheme and host lowercased, the fragment
// dropped and trailing slashes trimmed, so equivalent spellings of one
// URL share a file.
func urlHash(u *url.URL) string {
	c := *u
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	c.Fragment = ""
	c.RawFragment = ""
	c.Path = strings.TrimRight(c.Path, "/")
	c.RawPath = ""
	return fmt.Sprintf("%016x", xxhash.Sum64String(c.String()))[:hashLength]
}

// frontmatter is written in field order.
type frontmatter struct {
	Source    string `yaml:"source"`
	Title     string `yaml:"title"`
	Date      string `yaml:"date,omitempty"`
	Action    string `yaml:"action"`
	Model     string `yaml:"model,omitempty"`
	Image     string `yaml:"image,omitempty"`
	Generated string `yaml:"generated"`
}

// FormatResult formats a result with YAML frontmatter.
// image is the file name of the saved image, if any.
func FormatResult(r *referent.Result, image string, generated time.Time) (string, error) {
	fm := frontmatter{
		Source:    r.Source,
		Action:    string(r.Kind),
		Model:     r.Completion.Model,
		Image:     image,
		Generated: generated.Format("2006-01-02"),
	}
	if r.Article != nil {
		fm.Title = r.Article.Title
		if r.Article.PublishedAt != nil {
			fm.Date = *r.Article.PublishedAt
		}
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", referent.Errorf(referent.EINTERNAL, "format frontmatter: %v", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(r.Completion.Text)
	b.WriteString("\n")
	return b.String(), nil
}

// Ensure Writer implements referent.ResultWriter at compile time.
var _ referent.ResultWriter = (*Writer)(nil)

// Writer writes results as markdown files to a directory.
type Writer struct {
	baseDir string

	// Now returns the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, Now: time.Now}
}

// Write saves the result as <slug>-<action>.md and its image, if any, as
// <slug>.<ext>. Returns the path of the markdown file.
func (w *Writer) Write(ctx context.Context, r *referent.Result) (string, error) {
	if r == nil || r.Completion == nil {
		return "", referent.Errorf(referent.EINVALID, "result has no completion")
	}
	if r.Kind == "" {
		return "", referent.Errorf(referent.EINVALID, "result has no action")
	}
	slug, err := Slug(r.Source)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	var image string
	if r.Image != nil {
		image = slug + extension(r.Image.ContentType)
		if err := writeFile(filepath.Join(w.baseDir, image), r.Image.Data); err != nil {
			return "", err
		}
	}

	content, err := FormatResult(r, image, w.Now())
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.baseDir, slug+"-"+string(r.Kind)+".md")
	if err := writeFile(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// writeFile writes to a temporary file and renames it into place so
// readers never observe a partial file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

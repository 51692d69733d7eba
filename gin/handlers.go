package gin

import (
	"net/http"
	"strings"

	"github.com/fwojciec/referent"
	"github.com/gin-gonic/gin"
)

type parseRequest struct {
	URL string `json:"url"`
}

type textRequest struct {
	Text string `json:"text"`
}

type processRequest struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

type publishRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

type processResponse struct {
	Result string              `json:"result"`
	Action referent.ActionKind `json:"action"`
	Model  string              `json:"model"`
	Usage  referent.Usage      `json:"usage"`
}

type translateResponse struct {
	Translation string         `json:"translation"`
	Model       string         `json:"model"`
	Usage       referent.Usage `json:"usage"`
}

type imagePromptResponse struct {
	Prompt string         `json:"prompt"`
	Model  string         `json:"model"`
	Usage  referent.Usage `json:"usage"`
}

type imageResponse struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
	Model    string `json:"model"`
}

type publishResponse struct {
	MessageID string `json:"messageId"`
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bind decodes the JSON body into req.
func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.writeError(c, referent.Errorf(referent.EINVALID, "invalid JSON body"))
		return false
	}
	return true
}

// required rejects a missing or blank field.
func (s *Server) required(c *gin.Context, name, value string) bool {
	if strings.TrimSpace(value) == "" {
		s.writeError(c, referent.Errorf(referent.EINVALID, "%s is required", name))
		return false
	}
	return true
}

func (s *Server) handleParse(c *gin.Context) {
	var req parseRequest
	if !s.bind(c, &req) || !s.required(c, "url", req.URL) {
		return
	}

	article, err := s.Parser.Parse(c.Request.Context(), req.URL)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) handleProcess(c *gin.Context) {
	var req processRequest
	if !s.bind(c, &req) || !s.required(c, "text", req.Text) || !s.required(c, "action", req.Action) {
		return
	}
	kind, err := referent.ParseActionKind(req.Action)
	if err != nil {
		s.writeError(c, err)
		return
	}

	completion, err := s.Processor.Run(c.Request.Context(), kind, req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, processResponse{
		Result: completion.Text,
		Action: kind,
		Model:  completion.Model,
		Usage:  completion.Usage,
	})
}

func (s *Server) handleTranslate(c *gin.Context) {
	var req textRequest
	if !s.bind(c, &req) || !s.required(c, "text", req.Text) {
		return
	}

	completion, err := s.Processor.Run(c.Request.Context(), referent.ActionTranslate, req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, translateResponse{
		Translation: completion.Text,
		Model:       completion.Model,
		Usage:       completion.Usage,
	})
}

func (s *Server) handleImagePrompt(c *gin.Context) {
	var req textRequest
	if !s.bind(c, &req) || !s.required(c, "text", req.Text) {
		return
	}

	completion, err := s.Processor.Run(c.Request.Context(), referent.ActionImagePrompt, req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, imagePromptResponse{
		Prompt: completion.Text,
		Model:  completion.Model,
		Usage:  completion.Usage,
	})
}

func (s *Server) handleImage(c *gin.Context) {
	var req imageRequest
	if !s.bind(c, &req) || !s.required(c, "prompt", req.Prompt) {
		return
	}

	img, err := s.Illustrator.Illustrate(c.Request.Context(), req.Prompt)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, imageResponse{
		Image:    img.DataURL(),
		MimeType: img.ContentType,
		Model:    img.Model,
	})
}

func (s *Server) handlePublish(c *gin.Context) {
	var req publishRequest
	if !s.bind(c, &req) || !s.required(c, "text", req.Text) {
		return
	}

	var img *referent.Image
	if req.Image != "" {
		var err error
		if img, err = referent.ParseDataURL(req.Image); err != nil {
			s.writeError(c, err)
			return
		}
	}

	id, err := s.Publisher.Publish(c.Request.Context(), req.Text, img)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, publishResponse{MessageID: id})
}

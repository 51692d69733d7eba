package referent_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fwojciec/referent"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := referent.Errorf(referent.EINVALID, "field %q required", "text")

	assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
	assert.Equal(t, "field \"text\" required", referent.ErrorMessage(err))
	assert.Zero(t, referent.ErrorStatus(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, referent.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, referent.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, referent.EINTERNAL, referent.ErrorCode(errors.New("boom")))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("calling model: %w", referent.Errorf(referent.ERATELIMIT, "slow down"))

	assert.Equal(t, referent.ERATELIMIT, referent.ErrorCode(err))
	assert.Equal(t, "slow down", referent.ErrorMessage(err))
}

func TestUpstreamErrorf(t *testing.T) {
	t.Parallel()

	err := referent.UpstreamErrorf(http.StatusTooManyRequests, `{"error":"quota"}`, "openrouter: %s", "Too Many Requests")

	assert.Equal(t, referent.ERATELIMIT, referent.ErrorCode(err))
	assert.Equal(t, http.StatusTooManyRequests, referent.ErrorStatus(err))
	assert.Equal(t, `{"error":"quota"}`, referent.ErrorDetails(err))
	assert.Equal(t, "openrouter: Too Many Requests", referent.ErrorMessage(err))
}

func TestCodeForStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, referent.EUNAUTHORIZED, referent.CodeForStatus(http.StatusUnauthorized))
	assert.Equal(t, referent.EFORBIDDEN, referent.CodeForStatus(http.StatusForbidden))
	assert.Equal(t, referent.ENOTFOUND, referent.CodeForStatus(http.StatusNotFound))
	assert.Equal(t, referent.ERATELIMIT, referent.CodeForStatus(http.StatusTooManyRequests))
	assert.Equal(t, referent.EUNAVAILABLE, referent.CodeForStatus(http.StatusGone))
	assert.Equal(t, referent.EUNAVAILABLE, referent.CodeForStatus(http.StatusServiceUnavailable))
	assert.Equal(t, referent.EUNAVAILABLE, referent.CodeForStatus(http.StatusInternalServerError))
	assert.Equal(t, referent.ETIMEOUT, referent.CodeForStatus(http.StatusGatewayTimeout))
	assert.Equal(t, referent.EUPSTREAM, referent.CodeForStatus(http.StatusTeapot))
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	t.Run("keeps validation messages", func(t *testing.T) {
		t.Parallel()

		err := referent.Errorf(referent.EINVALID, "text is required")

		assert.Equal(t, "text is required", referent.UserMessage(err))
	})

	t.Run("translates rate limits", func(t *testing.T) {
		t.Parallel()

		err := referent.UpstreamErrorf(http.StatusTooManyRequests, "", "429")

		assert.Contains(t, referent.UserMessage(err), "rate limit")
	})

	t.Run("translates authentication failures", func(t *testing.T) {
		t.Parallel()

		err := referent.UpstreamErrorf(http.StatusUnauthorized, "", "401")

		assert.Contains(t, referent.UserMessage(err), "authentication")
	})

	t.Run("empty for nil", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, referent.UserMessage(nil))
	})
}

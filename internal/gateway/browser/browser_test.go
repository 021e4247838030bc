package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewPlaywright_Defaults(t *testing.T) {
	p := NewPlaywright(Config{}, zap.NewNop())

	assert.Equal(t, "firefox", p.config.Engine)
	assert.Equal(t, 5*time.Second, p.config.Timeout)
}

func TestBrowserType_Unsupported(t *testing.T) {
	p := NewPlaywright(Config{Engine: "netscape"}, zap.NewNop())

	_, err := p.browserType(nil)
	assert.Error(t, err)
}

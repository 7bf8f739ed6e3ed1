package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Logger receives per-attempt diagnostics. Nil disables them.
type Logger interface {
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
}

type zapLogger struct{ s *zap.SugaredLogger }

func (z zapLogger) Info(msg string, kv ...any) { z.s.Infow(msg, kv...) }
func (z zapLogger) Warn(msg string, kv ...any) { z.s.Warnw(msg, kv...) }

// Zap adapts a zap logger to Logger.
func Zap(l *zap.Logger) Logger { return zapLogger{s: l.Sugar()} }

// StatusError is returned for non-200 responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

type Client struct {
	HTTP      *http.Client
	Token     string
	UserAgent string
	// MaxElapsed bounds the whole retry loop; zero means 3s.
	MaxElapsed time.Duration
}

func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any, log Logger) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "application/json")
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second
	if c.MaxElapsed > 0 {
		exp.MaxElapsedTime = c.MaxElapsed
	}

	attempt := 0
	op := func() error {
		attempt++
		resp, err := c.HTTP.Do(req.WithContext(ctx))
		if err != nil {
			if log != nil {
				log.Warn("httpx.attempt_failed", "url", req.URL.String(), "attempt", attempt, "error", err.Error())
			}
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			if log != nil {
				log.Warn("httpx.server_error", "url", req.URL.String(), "attempt", attempt, "status", resp.StatusCode)
			}
			return &StatusError{Code: resp.StatusCode}
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(&StatusError{Code: resp.StatusCode})
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		if log != nil {
			log.Info("httpx.ok", "url", req.URL.String(), "attempts", attempt)
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(exp, ctx))
}

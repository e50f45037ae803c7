// Package diffusion sends prompts and canvas frames to an external
// image-generation service. Delivery is best effort: nothing here ever
// blocks the frame loop, and failures are only logged.
package diffusion

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/mochi/config"
)

// jobKind names what a queued request carries.
type jobKind string

const (
	kindPrompt jobKind = "prompt"
	kindFrame  jobKind = "frame"
)

// job is one queued upload.
type job struct {
	kind jobKind
	url  string
	data []byte // prompt text or JPEG bytes
}

// Client owns a bounded queue and one worker goroutine that drains it.
type Client struct {
	http      *http.Client
	promptURL string
	frameURL  string
	quality   int

	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex // guards closed against sends racing Close
	closed bool

	dropped atomic.Int64
	sent    atomic.Int64
}

// New starts a client. Call Close to stop the worker.
func New(cfg config.DiffusionConfig) *Client {
	queue := cfg.QueueSize
	if queue <= 0 {
		queue = 1
	}
	timeout := time.Duration(cfg.Timeout * float64(time.Second))
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	quality := cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		http:      &http.Client{Timeout: timeout},
		promptURL: cfg.PromptURL,
		frameURL:  cfg.FrameURL,
		quality:   quality,
		jobs:      make(chan job, queue),
		ctx:       ctx,
		cancel:    cancel,
	}

	c.wg.Add(1)
	go c.worker()

	return c
}

// SendPrompt queues a prompt update.
func (c *Client) SendPrompt(prompt string) {
	c.enqueue(job{kind: kindPrompt, url: c.promptURL, data: []byte(prompt)})
}

// SendFrame encodes img as JPEG and queues it. The image is not retained,
// so the caller may reuse it immediately.
func (c *Client) SendFrame(img image.Image) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.quality}); err != nil {
		slog.Warn("encoding frame", "error", err)
		return
	}
	c.enqueue(job{kind: kindFrame, url: c.frameURL, data: buf.Bytes()})
}

// Dropped returns how many jobs were discarded because the queue was full
// or the client was closed.
func (c *Client) Dropped() int64 { return c.dropped.Load() }

// Sent returns how many requests completed successfully.
func (c *Client) Sent() int64 { return c.sent.Load() }

// Close cancels in-flight requests, drains the queue and waits for the
// worker to exit. It is safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancel()
	close(c.jobs)
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Client) enqueue(j job) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed || j.url == "" {
		c.dropped.Add(1)
		return
	}

	select {
	case c.jobs <- j:
	default:
		c.dropped.Add(1)
		slog.Debug("diffusion queue full, dropping", "kind", string(j.kind))
	}
}

// worker runs in a goroutine, posting jobs until the queue is closed.
func (c *Client) worker() {
	defer c.wg.Done()

	for j := range c.jobs {
		if c.ctx.Err() != nil {
			continue // closing: drain without sending
		}
		if err := c.post(c.ctx, j); err != nil {
			slog.Warn("diffusion request failed", "kind", string(j.kind), "url", j.url, "error", err)
			continue
		}
		c.sent.Add(1)
	}
}

// post sends one job as a multipart form.
func (c *Client) post(ctx context.Context, j job) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	switch j.kind {
	case kindPrompt:
		if err := w.WriteField("prompt", string(j.data)); err != nil {
			return fmt.Errorf("writing prompt field: %w", err)
		}
	case kindFrame:
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="canvas.jpeg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("creating image part: %w", err)
		}
		if _, err := part.Write(j.data); err != nil {
			return fmt.Errorf("writing image part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.url, &body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

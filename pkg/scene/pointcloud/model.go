package pointcloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/herbview/pkg/scene"
)

// DefaultMaxPoints caps how many points a model keeps after decoding.
const DefaultMaxPoints = 200000

// HTTPClient is the subset of *http.Client used for remote assets.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Factory builds point-cloud models. It implements scene.Factory.
type Factory struct {
	Client HTTPClient
	// Sink is called with the model locked; it must not block or call
	// back into the model.
	Sink      scene.ErrorSink
	MaxPoints int
	// Fog is the colour distant points fade towards.
	Fog colorful.Color
}

// New starts loading url in the background and returns immediately.
func (f *Factory) New(url string) scene.Renderable {
	return Load(context.Background(), url, f)
}

// Model is a point cloud that loads asynchronously. Until the asset is
// decoded it renders nothing. Failures are reported to the factory's sink
// and leave the model empty.
type Model struct {
	url    string
	cancel context.CancelFunc
	done   chan struct{}
	fog    colorful.Color

	mu       sync.Mutex
	cloud    *Cloud
	err      error
	disposed bool
}

// Load creates a model for url and starts fetching it. A nil factory uses
// defaults.
func Load(ctx context.Context, url string, f *Factory) *Model {
	if f == nil {
		f = &Factory{}
	}
	ctx, cancel := context.WithCancel(ctx)
	m := &Model{
		url:    url,
		cancel: cancel,
		done:   make(chan struct{}),
		fog:    f.Fog,
	}
	go m.load(ctx, f)
	return m
}

func (m *Model) load(ctx context.Context, f *Factory) {
	defer close(m.done)
	cloud, err := fetch(ctx, f.Client, m.url)
	if err == nil {
		limit := f.MaxPoints
		if limit == 0 {
			limit = DefaultMaxPoints
		}
		cloud.Decimate(limit)
	}

	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.cloud, m.err = cloud, err
	if err != nil && f.Sink != nil {
		f.Sink(m.url, err)
	}
	m.mu.Unlock()
}

// URL returns the asset the model was created for.
func (m *Model) URL() string { return m.url }

// Done is closed once loading finished, failed or was cancelled.
func (m *Model) Done() <-chan struct{} { return m.done }

// Err returns the load error, if any.
func (m *Model) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Len returns the number of loaded points.
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cloud == nil {
		return 0
	}
	return len(m.cloud.Points)
}

// Bounds implements scene.Bounder.
func (m *Model) Bounds() (scene.Vec3, scene.Vec3, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cloud == nil || len(m.cloud.Points) == 0 {
		return scene.Vec3{}, scene.Vec3{}, false
	}
	return m.cloud.Min, m.cloud.Max, true
}

// Dispose cancels a pending load and drops the decoded points. It is safe
// to call more than once.
func (m *Model) Dispose() {
	m.cancel()
	m.mu.Lock()
	m.disposed = true
	m.cloud = nil
	m.mu.Unlock()
}

// Render draws every visible point with depth fog towards the model's fog
// colour. Points with zero alpha are skipped.
func (m *Model) Render(c *scene.Canvas, cam *scene.Camera) {
	m.mu.Lock()
	cloud := m.cloud
	m.mu.Unlock()
	if cloud == nil || c.Width() == 0 || c.Height() == 0 {
		return
	}

	v := cam.View(c.Width(), c.Height())
	extent := cloud.Max.Sub(cloud.Min).Len() / 2
	if extent <= 0 {
		extent = 1
	}
	fogStart := cam.Distance() - extent
	fogRange := 2 * extent

	for _, p := range cloud.Points {
		if p.Alpha <= 0 {
			continue
		}
		x, y, depth, ok := v.Project(p.Pos)
		if !ok {
			continue
		}
		t := (depth - fogStart) / fogRange
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		col := p.Color
		if t > 0 {
			col = col.BlendRgb(m.fog, float64(t)*0.6)
		}
		c.Plot(x, y, depth, col)
	}
}

// fetch opens and decodes url. Local paths and file:// URLs are read from
// disk; http(s) URLs are fetched with client.
func fetch(ctx context.Context, client HTTPClient, raw string) (*Cloud, error) {
	format := DetectFormat(raw)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, raw)
	}
	rc, err := open(ctx, client, raw)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	cloud, err := Decode(&ctxReader{ctx: ctx, r: rc}, format)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("pointcloud: decode %s: %w", raw, err)
	}
	return cloud, nil
}

func open(ctx context.Context, client HTTPClient, raw string) (io.ReadCloser, error) {
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
		if err != nil {
			return nil, fmt.Errorf("pointcloud: build request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("pointcloud: fetch %s: %w", raw, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("pointcloud: fetch %s: unexpected status %d", raw, resp.StatusCode)
		}
		return resp.Body, nil
	}
	path := raw
	if err == nil && u.Scheme == "file" {
		path = filepath.FromSlash(u.Path)
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("pointcloud: empty asset path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointcloud: open: %w", err)
	}
	return f, nil
}

// ctxReader stops reads once ctx is cancelled so Dispose interrupts large
// local decodes.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

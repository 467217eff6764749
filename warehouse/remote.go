package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"strconv"
	"time"
)

// BasePort is the transport port of worker 0; worker i listens on
// BasePort+i so parallel instances do not collide.
const BasePort = 5005

// WorkerAddr maps a worker id to the address its simulation listens on.
func WorkerAddr(workerID int) string {
	return fmt.Sprintf("localhost:%d", BasePort+workerID)
}

// RemoteConnection talks to a simulation running in another process over
// its HTTP surface. When the connection launched the process itself, Close
// also stops it.
type RemoteConnection struct {
	addr   string
	client *http.Client

	process *exec.Cmd
	cancel  context.CancelFunc

	closed bool
}

var _ Connection = &RemoteConnection{}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 5 * time.Second,
			}).DialContext,
			ResponseHeaderTimeout: 30 * time.Second,
			DisableKeepAlives:     true,
		},
	}
}

// DialRemote attaches to an already-running simulation at addr, polling
// until it answers or the bounded wait expires.
func DialRemote(addr string, timeout time.Duration) (*RemoteConnection, error) {
	c := &RemoteConnection{
		addr:   addr,
		client: newHTTPClient(),
	}
	deadline := time.Now().Add(timeout)
	for {
		if _, err := c.BehaviorSpecs(); err == nil {
			return c, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: no simulation at %s after %s", ErrConnectionTimeout, addr, timeout)
		}
		time.Sleep(250 * time.Millisecond)
	}
}

// LaunchRemote starts the simulation binary at path for the given worker
// and connects to it. The process is stopped again when the connection is
// closed.
func LaunchRemote(path string, workerID int, noGraphics bool, timeout time.Duration) (*RemoteConnection, error) {
	args := []string{
		"serve",
		"--port", strconv.Itoa(BasePort + workerID),
	}
	if noGraphics {
		args = append(args, "--no-graphics")
	}
	ctx, cancel := context.WithCancel(context.Background())
	process := exec.CommandContext(ctx, path, args...)
	if err := process.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("warehouse: launch simulation %s: %w", path, err)
	}

	conn, err := DialRemote(WorkerAddr(workerID), timeout)
	if err != nil {
		cancel()
		process.Wait()
		return nil, err
	}
	conn.process = process
	conn.cancel = cancel
	return conn, nil
}

// Connect builds the connection the config asks for: launch the simulation
// binary when a path is configured, otherwise attach to a running instance
// at the worker's port.
func Connect(cfg Config) (*RemoteConnection, error) {
	cfg = cfg.withDefaults()
	if cfg.EnvPath != "" {
		return LaunchRemote(cfg.EnvPath, cfg.WorkerID, cfg.NoGraphics, cfg.ConnectTimeout)
	}
	return DialRemote(WorkerAddr(cfg.WorkerID), cfg.ConnectTimeout)
}

func (c *RemoteConnection) BehaviorSpecs() ([]BehaviorSpec, error) {
	specs := make([]BehaviorSpec, 0)
	if err := c.get("/specs", nil, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

func (c *RemoteConnection) SetTimeScale(scale float64) error {
	return c.post("/timescale", map[string]float64{"scale": scale}, nil)
}

func (c *RemoteConnection) Reset() error {
	return c.post("/reset", nil, nil)
}

func (c *RemoteConnection) SetActions(behavior string, actions [][]int) error {
	body := map[string]interface{}{
		"behavior": behavior,
		"actions":  actions,
	}
	return c.post("/actions", body, nil)
}

func (c *RemoteConnection) Step() error {
	return c.post("/step", nil, nil)
}

func (c *RemoteConnection) GetSteps(behavior string) (AgentSteps, AgentSteps, error) {
	out := struct {
		Decision AgentSteps `json:"decision"`
		Terminal AgentSteps `json:"terminal"`
	}{}
	query := url.Values{"behavior": []string{behavior}}
	if err := c.get("/steps", query, &out); err != nil {
		return AgentSteps{}, AgentSteps{}, err
	}
	return out.Decision, out.Terminal, nil
}

func (c *RemoteConnection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	// best effort: the simulation may already be gone
	c.post("/close", nil, nil)
	if c.process != nil {
		c.cancel()
		c.process.Wait()
	}
	return nil
}

func (c *RemoteConnection) post(path string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	resp, err := c.client.Post("http://"+c.addr+path, "application/json", &buf)
	if err != nil {
		return fmt.Errorf("warehouse: POST %s: %w", path, err)
	}
	return c.readResponse(path, resp, out)
}

func (c *RemoteConnection) get(path string, query url.Values, out interface{}) error {
	u := "http://" + c.addr + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	resp, err := c.client.Get(u)
	if err != nil {
		return fmt.Errorf("warehouse: GET %s: %w", path, err)
	}
	return c.readResponse(path, resp, out)
}

func (c *RemoteConnection) readResponse(path string, resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("warehouse: %s: simulation returned %d: %s", path, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil {
		io.ReadAll(resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

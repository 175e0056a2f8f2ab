// FILE: logrelay/src/internal/source/docker.go
package source

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/lixenwraith/log"
)

// dockerAPI is the subset of the Docker Engine client used by DockerSource
type dockerAPI interface {
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	Close() error
}

// DockerSource follows the log output of a single container
type DockerSource struct {
	cli    dockerAPI
	logger *log.Logger
}

// NewDockerSource connects to the daemon given by host, or to the one
// described by the DOCKER_HOST environment when host is empty.
func NewDockerSource(host string, logger *log.Logger) (*DockerSource, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return newDockerSource(cli, logger), nil
}

func newDockerSource(cli dockerAPI, logger *log.Logger) *DockerSource {
	return &DockerSource{
		cli:    cli,
		logger: logger,
	}
}

// Open follows stdout and stderr of the named container from since onwards.
// Nothing older than since is replayed.
func (s *DockerSource) Open(ctx context.Context, identifier string, since time.Time) (Stream, error) {
	info, err := s.cli.ContainerInspect(ctx, identifier)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, fmt.Errorf("container '%s': %w", identifier, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to inspect container '%s': %w", identifier, err)
	}

	tty := info.Config != nil && info.Config.Tty
	id := identifier
	name := identifier
	if info.ContainerJSONBase != nil {
		id = info.ID
		name = strings.TrimPrefix(info.Name, "/")
	}

	body, err := s.cli.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
		Since:      formatSince(since),
	})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, fmt.Errorf("container '%s': %w", identifier, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open logs of container '%s': %w", identifier, err)
	}

	s.logger.Info("msg", "Following container logs",
		"component", "docker_source",
		"container", name,
		"id", shortID(id),
		"tty", tty,
		"since", since.Format(time.RFC3339))

	if tty {
		return newLineStream(body), nil
	}
	return newLineStream(demux(body)), nil
}

func (s *DockerSource) Close() error {
	return s.cli.Close()
}

// demuxedBody merges the stdout and stderr frames of a non-TTY log stream
type demuxedBody struct {
	*io.PipeReader
	body io.ReadCloser
}

func demux(body io.ReadCloser) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, body)
		pw.CloseWithError(err)
	}()
	return &demuxedBody{PipeReader: pr, body: body}
}

func (d *demuxedBody) Close() error {
	d.PipeReader.Close()
	return d.body.Close()
}

// formatSince renders a timestamp in the seconds.nanoseconds form the API accepts
func formatSince(since time.Time) string {
	if since.IsZero() {
		since = time.Now()
	}
	return fmt.Sprintf("%d.%09d", since.Unix(), since.Nanosecond())
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

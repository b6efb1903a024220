package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var (
	ErrNotConfigured = errors.New("git: working copy not configured")
)

type Config struct {
	Dir    string // copia de trabajo
	Remote string // opcional; vacío = upstream configurado en la rama
	Branch string // opcional; solo se usa junto con Remote

	// FastForwardOnly hace que un historial divergente falle en vez de
	// intentar un merge en el servidor.
	FastForwardOnly bool

	Binary string // default "git"
}

// Repo hace pull sobre una copia de trabajo local con el binario de git.
type Repo struct {
	cfg Config
}

func New(cfg Config) (*Repo, error) {
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	if cfg.Dir == "" {
		return nil, ErrNotConfigured
	}
	st, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("git: working copy: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("git: working copy %q is not a directory", cfg.Dir)
	}
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = "git"
	}
	cfg.Remote = strings.TrimSpace(cfg.Remote)
	cfg.Branch = strings.TrimSpace(cfg.Branch)
	return &Repo{cfg: cfg}, nil
}

func (g *Repo) pullArgs() []string {
	args := []string{"-C", g.cfg.Dir, "pull"}
	if g.cfg.FastForwardOnly {
		args = append(args, "--ff-only")
	} else {
		args = append(args, "--no-rebase", "--no-edit")
	}
	if g.cfg.Remote != "" {
		args = append(args, g.cfg.Remote)
		if g.cfg.Branch != "" {
			args = append(args, g.cfg.Branch)
		}
	}
	return args
}

// Sync corre git pull. El ctx acota la duración: al vencer se mata el proceso.
func (g *Repo) Sync(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, g.cfg.Binary, g.pullArgs()...)
	// Nunca pedir credenciales por terminal: el server no tiene TTY.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	out := strings.TrimSpace(buf.String())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, fmt.Errorf("git pull: %w", ctxErr)
		}
		return out, fmt.Errorf("git pull: %w", err)
	}
	return out, nil
}

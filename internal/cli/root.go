package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/streakly/internal/backup"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/storage/sqlite"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Session  *tracker.Session
	Location *time.Location
	Timezone string
	Now      func() time.Time

	Base context.Context
	Out  io.Writer
	In   io.Reader
}

type Options struct {
	Timezone     string
	Location     *time.Location
	Now          func() time.Time
	FetchTimeout time.Duration
}

func NewContext(store storage.Provider, opts Options) *Context {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	sessionOpts := []tracker.Option{
		tracker.WithLocation(opts.Location),
		tracker.WithClock(opts.Now),
	}
	if opts.FetchTimeout > 0 {
		sessionOpts = append(sessionOpts, tracker.WithFetchTimeout(opts.FetchTimeout))
	}
	return &Context{
		Store:    store,
		Session:  tracker.New(store, sessionOpts...),
		Location: opts.Location,
		Timezone: opts.Timezone,
		Now:      opts.Now,
		Base:     context.Background(),
		Out:      os.Stdout,
		In:       os.Stdin,
	}
}

// Ctx returns the command's base context.
func (c *Context) Ctx() context.Context {
	if c.Base == nil {
		return context.Background()
	}
	return c.Base
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Print(args ...any) {
	fmt.Fprint(c.Out, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Today returns today's date key in the configured timezone.
func (c *Context) Today() string {
	return utils.DateKey(c.Now(), c.Location)
}

// ResolveDate accepts YYYY-MM-DD, "today", "yesterday" or an empty string
// (today) and returns a date key.
func (c *Context) ResolveDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return c.Today(), nil
	case "yesterday":
		now := c.Now().In(c.Location)
		return utils.DateKey(time.Date(now.Year(), now.Month(), now.Day()-1, 12, 0, 0, 0, c.Location), c.Location), nil
	}
	t, err := utils.ParseDateInLocation(s, c.Location)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t.Format(constants.DateFormat), nil
}

// SQLitePath returns the database path when the store is SQLite-backed.
func (c *Context) SQLitePath() (string, bool) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return "", false
	}
	return c.Store.GetConfigPath(), true
}

// PerformAutomaticBackup creates a backup of an SQLite database and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	path, ok := c.SQLitePath()
	if !ok {
		return
	}
	if _, err := backup.NewManager(path).CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

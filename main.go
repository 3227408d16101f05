package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kintai/httpapi"
	"kintai/kintai"
	"kintai/view"

	"github.com/alexflint/go-filemutex"
	"github.com/joho/godotenv"
	"github.com/tidwall/buntdb"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "kintai",
		Usage: "employee attendance time tracking",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to config file"},
		},
		Commands: []*cli.Command{
			serveCommand,
			reportCommand,
		},
	}
	return app.Run(os.Args)
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "run the attendance HTTP server",
	Action: func(c *cli.Context) error {
		env, err := setup(c.String("config"))
		if err != nil {
			return err
		}
		defer env.close()

		r := httpapi.NewRouter(env.service, env.logger)
		env.logger.Info("listening", slog.String("addr", env.cfg.Listen))
		return r.Run(env.cfg.Listen)
	},
}

var reportCommand = &cli.Command{
	Name:      "report",
	Usage:     "print an attendance report; reads the database directly, so stop the server first or use GET /report",
	ArgsUsage: "<user-id> <start-date> <end-date>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 3 {
			return fmt.Errorf("usage: kintai report <user-id> <start-date> <end-date>")
		}
		start, err := kintai.ParseDate(c.Args().Get(1))
		if err != nil {
			return err
		}
		end, err := kintai.ParseDate(c.Args().Get(2))
		if err != nil {
			return err
		}

		env, err := setup(c.String("config"))
		if err != nil {
			return err
		}
		defer env.close()

		report, err := env.service.GetReport(c.Args().Get(0), start, end)
		if err != nil {
			return err
		}
		view.RenderReport(report)
		return nil
	},
}

// appEnv wires config, logger, the db file, and its cross-process lock.
// The lock is held for the life of the process: buntdb does not guard its
// file against a second process, the mutex does.
type appEnv struct {
	cfg     *Config
	logger  *slog.Logger
	db      *buntdb.DB
	fm      *filemutex.FileMutex
	service kintai.AttendanceService
}

func setup(configPath string) (*appEnv, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	dir, err := cfg.dataDir()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	fm, err := filemutex.New(filepath.Join(dir, "kintai.lock"))
	if err != nil {
		return nil, err
	}
	if err := fm.Lock(); err != nil {
		return nil, err
	}

	db, err := buntdb.Open(filepath.Join(dir, "kintai.db"))
	if err != nil {
		fm.Unlock()
		return nil, err
	}

	shift, err := cfg.BoundaryShift()
	if err != nil {
		db.Close()
		fm.Unlock()
		return nil, err
	}

	repo := kintai.NewAttendanceRepository(db)
	service := kintai.NewAttendanceService(repo, kintai.SystemClock(), shift, logger, &kintai.LogNotificator{Logger: logger})

	return &appEnv{cfg: cfg, logger: logger, db: db, fm: fm, service: service}, nil
}

func (e *appEnv) close() {
	e.db.Close()
	e.fm.Unlock()
}

func newLogger(cfg *Config) (*slog.Logger, error) {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}

	var out *os.File = os.Stderr
	if cfg.Log.Path != "" {
		f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		out = f
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), nil
}

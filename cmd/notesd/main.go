package main

import (
	"fmt"
	"hash"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/server"
	"github.com/rohit0033/notes-taking-app/internal/server/storage"
	"github.com/rohit0033/notes-taking-app/internal/transcribe"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

const dbname = "notes.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "notesd",
		Short:   "Notes server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func kdf(l int, k []byte) []byte {
	nhash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	payload := make([]byte, l)

	kdf := hkdf.New(nhash, k, nil, nil)
	_, err := io.ReadFull(kdf, payload)
	if err != nil {
		panic(err)
	}

	return payload
}

func load() (*koanf.Koanf, func(*storm.Options) error, error) {
	konf := koanf.New(".")
	if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
		return nil, nil, err
	}

	codec, err := database.StormCodecFromName(konf.String("database_codec"))
	if err != nil {
		return nil, nil, err
	}
	return konf, codec, nil
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, codec, err := load()
			if err != nil {
				return err
			}

			return database.StormInit(dbnameWithPath(konf.String("database_path")), codec)
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, codec, err := load()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(konf.String("database_path")), codec)
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, codec, err := load()
			if err != nil {
				return err
			}

			if konf.String("secret_key") == "" {
				return errors.New("secret_key not found")
			}

			db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")), codec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			uploads := konf.String("uploads_path")
			if uploads == "" {
				uploads = "uploads"
			}
			files, err := storage.NewDiskStore(uploads, konf.MustString("public_base_url"))
			if err != nil {
				return errors.Wrap(err, "could not open uploads storage")
			}

			ttl := konf.Duration("session.access_token_ttl")
			if ttl == 0 {
				ttl = 60 * 24 * time.Hour
			}

			engine := server.EchoEngine(server.IOC{
				Version:                   version,
				Database:                  db,
				Files:                     files,
				Engine:                    transcriptionEngine(konf),
				NoRegistration:            konf.Bool("no_registration"),
				SigningKey:                kdf(32, konf.MustBytes("secret_key")),
				AccessTokenExpirationTime: ttl,
			})
			server.PrintRoutes(engine)

			address := konf.String("address")
			message := "could not run server"
			log.Printf("Server listening on %s\n", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					log.Printf("Removing existing %s\n", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)

// transcriptionEngine builds the recognition engine factory from the
// configuration. Each transcription request gets its own engine instance.
// There is no speech recognizer embedded in the server so the scripted
// engine is the only backend, mainly useful for demos and tests.
func transcriptionEngine(konf *koanf.Koanf) func() transcribe.Engine {
	if script := konf.Strings("transcription.script"); len(script) > 0 {
		return func() transcribe.Engine {
			return transcribe.NewMockEngine(script...)
		}
	}
	return func() transcribe.Engine {
		return &transcribe.MockEngine{StartErr: transcribe.ErrUnsupported}
	}
}

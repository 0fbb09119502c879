package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/model"
	"github.com/spf13/cobra"
)

// go run tools/console/main.go notes.db notes UserID f2a98ab0-2c40-42b4-be08-da3b771be935

var countOnly bool

func main() {
	c := &cobra.Command{
		Use:   "console DBFILE TABLE [FIELD VALUE]",
		Short: "Inspect the notes database",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(_ *cobra.Command, args []string) error {
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], database.StormCodec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			//
			// Prepare request
			//

			matchers := []q.Matcher{}
			if len(args) == 4 {
				matchers = append(matchers, q.Eq(args[2], args[3]))
			}
			query := db.Select(matchers...).OrderBy("CreatedAt").Reverse()

			// Execute

			if countOnly {
				return count(args[1], query)
			}

			return list(args[1], query)
		},
	}
	c.Flags().BoolVar(&countOnly, "count", false, "only print the number of matching records")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func count(tablename string, query storm.Query) error {
	var records any
	switch tablename {
	case "users":
		records = &model.User{}
	case "notes":
		records = &model.Note{}
	default:
		return errors.Errorf("unknown tablename: %s", tablename)
	}

	n, err := query.Count(records)
	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	fmt.Println("Count:", n)

	return nil
}

func list(tablename string, query storm.Query) error {
	var records any
	switch tablename {
	case "users":
		records = &[]*model.User{}
	case "notes":
		records = &[]*model.Note{}
	default:
		return errors.Errorf("unknown tablename: %s", tablename)
	}

	err := query.Find(records)
	if err == storm.ErrNotFound {
		fmt.Println("[]")
		return nil
	}

	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	jsondump(records)

	return nil
}

func jsondump(v any) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(d))
}

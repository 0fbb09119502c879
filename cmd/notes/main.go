package main

import (
	"fmt"
	"os"

	"github.com/rohit0033/notes-taking-app/internal/client"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	c := &cobra.Command{
		Use:     "notes",
		Short:   "Notes client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(signupCmd)
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(listCmd)
	c.AddCommand(showCmd)
	c.AddCommand(newCmd)
	c.AddCommand(editCmd)
	c.AddCommand(rmCmd)
	c.AddCommand(favCmd)
	c.AddCommand(attachCmd)
	c.AddCommand(recordCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var favoritesOnly bool

var (
	signupCmd = &cobra.Command{
		Use:   "signup",
		Short: "Register a new account on the notes server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(client.Signup)
		},
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the notes server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(client.Login)
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(client.Logout)
		},
	}

	listCmd = &cobra.Command{
		Use:   "list [QUERY]",
		Short: "List your notes, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return client.Run(func() error {
				return client.ListNotes(query, favoritesOnly)
			})
		},
	}

	showCmd = &cobra.Command{
		Use:   "show ID",
		Short: "Print a note with its attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(func() error {
				return client.ShowNote(args[0])
			})
		},
	}

	newCmd = &cobra.Command{
		Use:   "new",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(client.NewNote)
		},
	}

	editCmd = &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(func() error {
				return client.EditNote(args[0])
			})
		},
	}

	rmCmd = &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(func() error {
				return client.RemoveNote(args[0])
			})
		},
	}

	favCmd = &cobra.Command{
		Use:   "fav ID",
		Short: "Toggle a note's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(func() error {
				return client.FavoriteNote(args[0])
			})
		},
	}

	attachCmd = &cobra.Command{
		Use:   "attach ID FILENAME",
		Short: "Attach an image to a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(func() error {
				return client.AttachImage(args[0], args[1])
			})
		},
	}

	recordCmd = &cobra.Command{
		Use:   "record FILENAME",
		Short: "Transcribe a recording into an audio note",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Run(func() error {
				return client.Record(args[0])
			})
		},
	}
)

func init() {
	listCmd.Flags().BoolVarP(&favoritesOnly, "favorite", "f", false, "only list favorite notes")
}

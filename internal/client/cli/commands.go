package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/docportal/internal/client/upload"
	"github.com/dmitrijs2005/docportal/internal/shared"
)

func (a *App) loginCommand() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check portal credentials and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				var err error
				if username, err = GetSimpleText(a.in, "Enter username:", a.out); err != nil {
					return err
				}
			}

			pw, err := getPassword(a.out)
			if err != nil {
				return err
			}
			defer shared.WipeByteArray(pw)

			token, err := a.client.Login(cmd.Context(), username, string(pw))
			if err != nil {
				return err
			}
			if token != "" {
				if err := a.session.Save(token); err != nil {
					return err
				}
			}
			fmt.Fprintln(a.out, "Login successful")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "portal user name")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.session.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *App) uploadCommand() *cobra.Command {
	var mimeType string
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Provision files as Odoo documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				p, err := upload.EncodeFile(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if mimeType != "" {
					p.MimeType = mimeType
				}

				res, err := a.client.Upload(cmd.Context(), p)
				if err != nil {
					fmt.Fprintf(a.out, "%s: %v\n", p.FileName, err)
					errs = append(errs, fmt.Errorf("%s: %w", p.FileName, err))
					continue
				}
				fmt.Fprintf(a.out, "%s: %s (attachment %d, document %d, folder %d)\n",
					p.FileName, res.Message, res.AttachmentID, res.DocumentID, res.FolderID)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVar(&mimeType, "mimetype", "", "override the detected MIME type")
	return cmd
}

func (a *App) contactsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List Odoo contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			partners, err := a.client.Contacts(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE")
			for _, p := range partners {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Email, p.Phone)
			}
			return tw.Flush()
		},
	}
}

func (a *App) foldersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List document folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			folders, err := a.client.Folders(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPARENT")
			for _, f := range folders {
				parent := "-"
				if f.ParentID > 0 {
					parent = fmt.Sprint(f.ParentID)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", f.ID, f.Name, parent)
			}
			return tw.Flush()
		},
	}
}

func (a *App) uploadsCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "uploads",
		Short: "Show recent uploads recorded by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.client.Uploads(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tFILE\tSTATUS\tDOCUMENT\tERROR")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.FileName, e.Status, e.DocumentID,
					strings.ReplaceAll(e.Error, "\n", " "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries (server default 20)")
	return cmd
}

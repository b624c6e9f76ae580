package main

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/config"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/portfolio"
	"github.com/spf13/cobra"
)

// maxAttachmentSize bounds files stored inline in the database.
const maxAttachmentSize = 10 << 20

func attachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Manage documents attached to saved properties",
		Long: `Attach links, images or files (appraisals, registry extracts, photos)
to a favorite property. Files are stored inside the database.`,
	}

	cmd.AddCommand(attachAddCmd())
	cmd.AddCommand(attachListCmd())
	cmd.AddCommand(attachRemoveCmd())

	return cmd
}

func attachAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <property-id>",
		Short: "Attach a link or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			link, _ := cmd.Flags().GetString("link")
			file, _ := cmd.Flags().GetString("file")
			name, _ := cmd.Flags().GetString("name")

			in, err := attachmentInput(link, file, name)
			if err != nil {
				return err
			}

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			id, err := resolveID(ctx, sess.manager, args[0])
			if err != nil {
				return err
			}
			a, err := sess.manager.AddAttachment(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Documento %q agregado (%s)", a.Name, a.ID)))
			return nil
		},
	}

	cmd.Flags().String("link", "", "URL to attach")
	cmd.Flags().String("file", "", "file to attach")
	cmd.Flags().String("name", "", "display name (default: file name or URL)")
	cmd.MarkFlagsMutuallyExclusive("link", "file")
	cmd.MarkFlagsOneRequired("link", "file")

	return cmd
}

// attachmentInput builds the attachment from either a link or a file.
// Images are recognized from their content.
func attachmentInput(link, file, name string) (portfolio.AttachmentInput, error) {
	if link != "" {
		if name == "" {
			name = link
		}
		return portfolio.AttachmentInput{Type: model.AttachmentLink, Name: name, Data: link}, nil
	}

	path := config.ExpandPath(file)
	info, err := os.Stat(path)
	if err != nil {
		return portfolio.AttachmentInput{}, fmt.Errorf("failed to read %s: %w", file, err)
	}
	if info.Size() > maxAttachmentSize {
		return portfolio.AttachmentInput{}, fmt.Errorf("%s is larger than %d MB", file, maxAttachmentSize>>20)
	}
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return portfolio.AttachmentInput{}, fmt.Errorf("failed to read %s: %w", file, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	kind := model.AttachmentFile
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil && strings.HasPrefix(mediaType, "image/") {
		kind = model.AttachmentImage
	}
	if name == "" {
		name = filepath.Base(path)
	}

	return portfolio.AttachmentInput{
		Type:     kind,
		MimeType: mimeType,
		Name:     name,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

func attachListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <property-id>",
		Short: "List the documents of a property, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			id, err := resolveID(ctx, sess.manager, args[0])
			if err != nil {
				return err
			}
			attachments, err := sess.manager.Attachments(ctx, id)
			if err != nil {
				return err
			}
			if len(attachments) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("Sin documentos."))
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Tipo"),
				cli.TableHeaderStyle.Render("Nombre"),
				cli.TableHeaderStyle.Render("Fecha"))
			for _, a := range attachments {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Type, cli.Truncate(a.Name, 40), a.Date.Local().Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
}

func attachRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <property-id> <attachment-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a document",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			id, err := resolveID(ctx, sess.manager, args[0])
			if err != nil {
				return err
			}
			if err := sess.manager.RemoveAttachment(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Documento eliminado"))
			return nil
		},
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

var docsJSON bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage uploaded documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents and their processing status",
	RunE:  runDocsList,
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a PDF document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsUpload,
}

var docsRenameCmd = &cobra.Command{
	Use:   "rename [doc-id] [new-name]",
	Short: "Rename a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocsRename,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsDelete,
}

var docsURLCmd = &cobra.Command{
	Use:   "url [doc-id]",
	Short: "Print a short-lived URL for viewing the PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsURL,
}

var docsPageImageCmd = &cobra.Command{
	Use:   "page-image [doc-id] [page]",
	Short: "Print a short-lived URL for a page preview image",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocsPageImage,
}

func init() {
	docsListCmd.Flags().BoolVar(&docsJSON, "json", false, "output as JSON")
	docsCmd.AddCommand(docsListCmd, docsUploadCmd, docsRenameCmd, docsDeleteCmd, docsURLCmd, docsPageImageCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}

	docs, err := svcs.library.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if docsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("%-36s  %-12s  %s\n", doc.ID, doc.Status, doc.Name)
		if doc.Status == domain.StatusReady {
			cmd.Printf("%-36s  %-12s  %d pages, %d chunks\n", "", "", doc.TotalPages, doc.TotalChunks)
		}
	}
	return nil
}

func runDocsUpload(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := svcs.library.Upload(cmd.Context(), filepath.Base(path), content); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s. Processing starts shortly; run 'docuquery docs list' to watch its status.\n", filepath.Base(path))
	return nil
}

func runDocsRename(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}

	if err := svcs.library.Rename(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	cmd.Printf("Renamed %s to %s\n", args[0], args[1])
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}

	if err := svcs.library.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runDocsURL(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}

	handle, err := svcs.viewer.ViewableURL(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Println(handle)
	return nil
}

func runDocsPageImage(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}

	page, err := strconv.Atoi(args[1])
	if err != nil || page < 1 {
		return fmt.Errorf("invalid page number %q", args[1])
	}

	url, err := svcs.viewer.PageImage(cmd.Context(), args[0], page)
	if err != nil {
		return err
	}

	cmd.Println(url)
	return nil
}

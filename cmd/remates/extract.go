package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/bulletin"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/config"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/dedup"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/extraction"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/llm"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/metrics"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract auction notices from bulletin text",
		Long: `Read a Boletín Judicial text, split it into notices and ask the language
model for the structured records. The text comes from --file, from --url
(use "default" for the official bulletin page) or from standard input.

The extracted properties replace the previous results.`,
		RunE: runExtract,
	}

	cmd.Flags().StringP("file", "f", "", "read the bulletin from a file (- for stdin)")
	cmd.Flags().String("url", "", `fetch the bulletin from a web page ("default" for the official bulletin)`)
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	cmd.Flags().String("metrics-textfile", "", "write extraction metrics to this file")
	_ = viper.BindPFlag("metrics.textfile", cmd.Flags().Lookup("metrics-textfile"))

	return cmd
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	filePath, _ := cmd.Flags().GetString("file")
	rawURL, _ := cmd.Flags().GetString("url")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if filePath != "" && rawURL != "" {
		return fmt.Errorf("use either --file or --url, not both")
	}

	text, err := readBulletin(ctx, cmd, filePath, rawURL)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return common.NewUserError(extraction.NoPropertiesMessage, extraction.ErrEmptyInput)
	}

	client, err := llm.NewClient(config.LoadLLMConfig())
	if err != nil {
		if errors.Is(err, common.ErrMissingAPIKey) {
			return common.NewUserError("Falta la clave de API. Configura llm.api_key o GEMINI_API_KEY.", err)
		}
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	recorder := metrics.NewRecorder()

	history, closeHistory := duplicateHistory(sess.store)
	defer closeHistory()
	checker := dedup.NewChecker(history, slog.Default())
	if check, checkErr := checker.Check(ctx, text); checkErr == nil && check.Duplicate {
		recorder.DuplicateInput()
		fmt.Fprintln(errOut, cli.FormatWarning(dedup.Warning))
	}

	hooks := extraction.Hooks{
		OnChunkDone: recorder.ChunkDone,
		OnRetry:     recorder.Retry,
	}
	if !noProgress {
		progress := cli.NewChunkProgress(errOut)
		hooks.OnChunkStart = progress.ChunkStart
		hooks.OnChunkDone = func(index, total, items int, err error) {
			recorder.ChunkDone(index, total, items, err)
			progress.ChunkDone(index, total, items, err)
		}
		hooks.OnRetry = func(index, attempt int, delay time.Duration, err error) {
			recorder.Retry(index, attempt, delay, err)
			progress.Retry(index, attempt, delay, err)
		}
	}

	extractor := extraction.NewExtractor(client, config.LoadExtractionOptions(), slog.Default()).WithHooks(hooks)

	handler := cli.NewInterruptHandler(errOut)
	runCtx, stop := handler.HandleInterrupts(ctx, true)
	result, runErr := extractor.Run(runCtx, text)
	stop()

	if result != nil {
		recorder.ObserveRun(result.Duration)
	}
	writeMetrics(recorder)

	if result == nil || len(result.Properties) == 0 {
		if handler.WasInterrupted() {
			return nil
		}
		return runErr
	}

	// The parent context is still live after an interrupt, so partial
	// results are stored.
	stored, err := sess.manager.IngestResults(context.WithoutCancel(ctx), result.Properties)
	if err != nil {
		return err
	}

	if runErr != nil && !handler.WasInterrupted() {
		return runErr
	}

	rejected, favorites, err := sess.manager.Sets(ctx)
	if err != nil {
		return err
	}
	res := query.Apply(stored, model.DefaultFilters(), rejected, favorites)

	fmt.Fprintln(out, cli.FormatTitle("Resultados"))
	if err := printGroups(out, res, rejected, favorites); err != nil {
		return err
	}
	fmt.Fprintln(out)
	summary := fmt.Sprintf("%d propiedades en %d expedientes (%d fragmentos", len(res.Properties), len(res.Groups), result.Chunks)
	if result.FailedChunks > 0 {
		summary += fmt.Sprintf(", %d con errores", result.FailedChunks)
	}
	fmt.Fprintln(out, cli.FormatSuccess(summary+")"))
	return nil
}

// readBulletin picks the input source: a URL, a file or standard input.
func readBulletin(ctx context.Context, cmd *cobra.Command, filePath, rawURL string) (string, error) {
	if rawURL != "" {
		u, err := bulletin.ResolveURL(rawURL)
		if err != nil {
			return "", err
		}
		return bulletin.NewFetcher(slog.Default()).FetchText(ctx, u)
	}

	if filePath != "" && filePath != "-" {
		data, err := os.ReadFile(config.ExpandPath(filePath)) // #nosec G304
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("Pega el texto del boletín y termina con Ctrl+D"))
	}
	return cli.NewNonBlockingReader(in).ReadAll(ctx)
}

// duplicateHistory uses Redis when redis.addr is configured and the local
// blob table otherwise.
func duplicateHistory(store service.BlobStore) (dedup.History, func()) {
	addr := viper.GetString("redis.addr")
	if addr == "" {
		return dedup.NewBlobHistory(store), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})
	return dedup.NewRedisHistory(client), func() {
		if err := client.Close(); err != nil {
			slog.Debug("failed to close redis client", "error", err)
		}
	}
}

func writeMetrics(r *metrics.Recorder) {
	path := viper.GetString("metrics.textfile")
	if path == "" {
		return
	}
	if err := r.WriteTextfile(config.ExpandPath(path)); err != nil {
		slog.Warn("Failed to write metrics", "path", path, "error", err)
	}
}

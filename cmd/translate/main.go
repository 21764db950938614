// Command translate fills empty entries of the Sorani (ckb) and Kurmanji
// (kmr) gettext catalogs with the translations built into the i18n package.
//
// Usage:
//
//	translate                           # locale/{ckb,kmr}/LC_MESSAGES/messages.po
//	translate -dir web/locale -domain django
//
// Only entries with an empty msgstr are written; a catalog with nothing to
// fill is left untouched. Run it with LOG_LEVEL=debug to see every entry.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/applyhelp/internal/config"
	"github.com/sakif/applyhelp/internal/i18n"
	"github.com/sakif/applyhelp/internal/logging"
	"github.com/sakif/applyhelp/internal/pofile"
)

func main() {
	dir := flag.String("dir", "locale", "root of the locale tree")
	domain := flag.String("domain", "messages", "catalog name without the .po extension")
	flag.Parse()

	cfg, err := config.LoadForTools()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger, closeLog, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to set up logging", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLog.Close()

	failed := false
	for _, loc := range []i18n.Locale{i18n.Sorani, i18n.Kurmanji} {
		path := filepath.Join(*dir, string(loc), "LC_MESSAGES", *domain+".po")
		if err := update(logger, path, loc); err != nil {
			failed = true
		}
	}
	if failed {
		closeLog.Close()
		os.Exit(1)
	}
}

// update fills one catalog. A missing catalog is reported and skipped.
func update(logger *slog.Logger, path string, loc i18n.Locale) error {
	log := logger.With(slog.String("locale", string(loc)), slog.String("file", path))

	changes, err := pofile.UpdateFile(path, i18n.Messages(loc))
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn("catalog not found")
		return nil
	case err != nil:
		log.Error("updating catalog", slog.String("error", err.Error()))
		return err
	}

	for _, c := range changes {
		log.Debug("filled entry", slog.String("msgid", c.MsgID), slog.String("msgstr", c.Translation), slog.Int("count", c.Count))
	}
	log.Info("catalog updated", slog.Int("entries", pofile.Total(changes)))
	return nil
}

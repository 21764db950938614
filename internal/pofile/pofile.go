// Package pofile fills empty entries of gettext .po catalogs.
//
// Only entries whose msgstr is exactly "" are touched. Existing translations,
// comments, plural forms and file layout are left as they are, so running the
// updater twice is a no-op the second time.
package pofile

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Change is one msgid that was filled in.
type Change struct {
	MsgID       string
	Translation string
	Count       int
}

// Apply fills every empty msgstr whose msgid has a translation and returns
// the new content plus the list of changes in msgid order.
func Apply(content string, translations map[string]string) (string, []Change) {
	ids := make([]string, 0, len(translations))
	for id := range translations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var changes []Change
	for _, id := range ids {
		tr := translations[id]
		if tr == "" {
			continue
		}

		// msgid "X" <ws> msgstr <ws> "" <ws> \n
		re := regexp.MustCompile(`(msgid "` + regexp.QuoteMeta(escape(id)) + `"\s*\n\s*msgstr\s*)""\s*\n`)
		replacement := `"` + escape(tr) + `"` + "\n"

		n := 0
		content = re.ReplaceAllStringFunc(content, func(match string) string {
			n++
			prefix := re.FindStringSubmatch(match)[1]
			return prefix + replacement
		})
		if n > 0 {
			changes = append(changes, Change{MsgID: id, Translation: tr, Count: n})
		}
	}
	return content, changes
}

// poEscaper turns a Go string into the body of a PO string literal.
var poEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

func escape(s string) string { return poEscaper.Replace(s) }

// Total sums the entry counts of changes.
func Total(changes []Change) int {
	total := 0
	for _, c := range changes {
		total += c.Count
	}
	return total
}

// UpdateFile applies translations to the catalog at path. The file is
// rewritten only when at least one entry changed.
func UpdateFile(path string, translations map[string]string) ([]Change, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("pofile: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pofile: reading %s: %w", path, err)
	}

	updated, changes := Apply(string(raw), translations)
	if len(changes) == 0 {
		return nil, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("pofile: writing %s: %w", path, err)
	}
	return changes, nil
}

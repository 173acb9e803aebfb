package recordings

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/killallgit/voicenotes-api/internal/models"
)

const maxTitleLength = 60

var (
	headingPrefix  = regexp.MustCompile(`^#+\s+`)
	leadingMarkup  = regexp.MustCompile("^[*_`#\\->\\s\\[\\]().\\d]+")
	trailingMarkup = regexp.MustCompile("[*_`#]+$")
)

// ExtractTitle derives a recording title from a markdown note. The first
// line starting with '#' wins with any "# " prefix removed, so a hashtag
// line such as "#standup" is kept as written. Otherwise the first line that
// still has more than three characters after stripping list and emphasis
// markup, truncated to 60 characters.
func ExtractTitle(note string) string {
	if strings.TrimSpace(note) == "" {
		return models.DefaultRecordingTitle
	}

	lines := strings.Split(note, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	for _, line := range lines {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if title := strings.TrimSpace(headingPrefix.ReplaceAllString(line, "")); title != "" {
			return title
		}
	}

	for _, line := range lines {
		if line == "" {
			continue
		}
		candidate := leadingMarkup.ReplaceAllString(line, "")
		candidate = strings.TrimSpace(trailingMarkup.ReplaceAllString(candidate, ""))
		if utf8.RuneCountInString(candidate) > 3 {
			return truncate(candidate, maxTitleLength)
		}
	}

	return models.DefaultRecordingTitle
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Package splitter partitions the text of a novel into chapters using a heading pattern.
package splitter

import (
	"regexp"
	"strings"

	"github.com/unalkalkan/ChapterMark/pkg/types"
)

// IntroductionTitle is the title of the synthetic record holding the text before the first heading
const IntroductionTitle = "Book introduction:"

// Split partitions text into an introduction record followed by one record per heading match.
// A nil pattern selects the default "第N章" pattern. Text without any heading yields an empty sequence.
func Split(text string, pattern *regexp.Regexp) types.ChapterSequence {
	if pattern == nil {
		pattern = DefaultPattern()
	}

	matches := pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return types.ChapterSequence{}
	}

	chapters := make(types.ChapterSequence, 0, len(matches)+1)
	chapters = append(chapters, types.ChapterRecord{
		Title: IntroductionTitle,
		Body:  strings.TrimSpace(text[:matches[0][0]]),
	})

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		chapters = append(chapters, types.ChapterRecord{
			Title: strings.TrimSpace(text[m[0]:m[1]]),
			Body:  strings.TrimSpace(text[m[1]:end]),
		})
	}

	return chapters
}

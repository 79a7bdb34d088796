package git

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrMalformedMergeMessage is returned when a merge commit message does not
// follow the expected "Merge branch '<name>' into <target>" convention.
var ErrMalformedMergeMessage = errors.New("malformed merge message")

// mergeMessageRe matches the standard git merge commit subject. The pattern is
// intentionally strict: if a merge tool wrote something else we refuse to
// guess which branch was merged in, because a wrong guess would misattribute
// the mainline parent.
var mergeMessageRe = regexp.MustCompile(`^Merge branch '(?P<SourceBranch>[^']*)' into (?P<TargetBranch>\S+)`)

// MergeMessage represents a parsed merge commit message.
type MergeMessage struct {
	IncomingBranch string // the branch that was merged in
	TargetBranch   string // the branch that was merged into
}

// ParseMergeMessage parses a merge commit message and extracts the incoming
// and target branch names. Returns an error wrapping ErrMalformedMergeMessage
// if the message does not match the expected convention.
func ParseMergeMessage(message string) (MergeMessage, error) {
	match := mergeMessageRe.FindStringSubmatch(message)
	if match == nil {
		return MergeMessage{}, fmt.Errorf("%w: %q", ErrMalformedMergeMessage, firstLine(message))
	}

	var result MergeMessage
	for i, name := range mergeMessageRe.SubexpNames() {
		switch name {
		case "SourceBranch":
			result.IncomingBranch = match[i]
		case "TargetBranch":
			result.TargetBranch = match[i]
		}
	}
	return result, nil
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}

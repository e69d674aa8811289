//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")

	mdBold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic     = regexp.MustCompile(`\*(.*?)\*`)
	mdHeader     = regexp.MustCompile(`#{1,6}\s+`)
	mdCodeBlock  = regexp.MustCompile("```[\\s\\S]*?```")
	mdInlineCode = regexp.MustCompile("`(.*?)`")
	mdBullet     = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	mdNumbered   = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
)

// StripCodeFence removes a surrounding ``` or ```json fence
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	return s
}

// CleanMarkdown flattens markdown in model output to plain chat text
func CleanMarkdown(text string) string {
	s := mdBold.ReplaceAllString(text, "$1")
	s = mdItalic.ReplaceAllString(s, "$1")
	s = mdHeader.ReplaceAllString(s, "")
	s = mdCodeBlock.ReplaceAllString(s, "")
	s = mdInlineCode.ReplaceAllString(s, "$1")
	s = mdBullet.ReplaceAllString(s, "")
	s = mdNumbered.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// DecodeStrict strips a code fence and decodes exactly one JSON value
// into v. Unknown object fields and trailing data are rejected.
func DecodeStrict(raw string, v any) error {
	dec := json.NewDecoder(strings.NewReader(StripCodeFence(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding model output: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("decoding model output: trailing data")
	}
	return nil
}

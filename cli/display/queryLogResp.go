/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/coinsage/coinsage/cli/credentials"
	"github.com/coinsage/coinsage/common/schema"
)

// QueryLogResp prints query-log entries as a table
func QueryLogResp(statusCode int, data []byte, err error) error {

	// Check for errors
	if err != nil {
		return fmt.Errorf("HTTP get failed: %w", err)
	}

	// Errors use the generic envelope
	if statusCode != 200 {
		return AnyResp(statusCode, data, nil)
	}

	fmt.Printf("\nServer response: HTTP %d\n\n", statusCode)

	var resp schema.APIQueryLogResponse
	err = json.Unmarshal(data, &resp)
	if err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.Status == schema.APIStatusExpired {
		credentials.AccessExpired()
	}

	WriteQueryLogs(os.Stdout, resp.Data)
	return nil
}

// WriteQueryLogs writes one row per entry, newest first as received
func WriteQueryLogs(out io.Writer, entries []schema.QueryLog) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No queries recorded")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tUSER\tCOMMAND\tTOKEN\tNAME\tCHAIN\tADDRESS\tRESPONSE")
	for _, q := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			q.CreatedAt.UTC().Format(time.DateTime), dash(q.UserID), q.Command, dash(q.TokenID),
			dash(q.TokenName), dash(q.ChainID), dash(q.TokenAddress), summary(q.Response))
	}
	_ = w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// summary renders the response map as sorted key=value pairs on one line
func summary(m map[string]any) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := strings.Join(strings.Fields(fmt.Sprint(m[k])), " ")
		if len(v) > 40 {
			v = v[:37] + "..."
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, " ")
}

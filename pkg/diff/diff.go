// Package diff computes a line-level diff between two text blobs, used to
// preview proposed instruction-document edits as accept/reject hunks.
//
// The algorithm is the classic O(n·m) longest-common-subsequence table
// with a backtracking pass, replayed against both inputs to produce a
// linear sequence of unchanged/added/removed lines. It is an LCS diff,
// not a minimal Myers diff: repeated identical lines may be matched in a
// different but still line-accurate way. The engine has no built-in size
// limit or cancellation; callers bound the inputs they feed it.
package diff

// Op classifies a diff line.
type Op int

const (
	OpUnchanged Op = iota
	OpAdded
	OpRemoved
)

// String returns the conventional short tag for the op.
func (o Op) String() string {
	switch o {
	case OpAdded:
		return "added"
	case OpRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// Line is one element of a computed diff.
type Line struct {
	Op      Op     `json:"op"`
	Content string `json:"content"`
}

// Lines diffs oldText against newText line by line. Inputs are split on
// "\n"; an empty input contributes zero lines, so diffing "" against text
// yields only additions. Identical inputs yield all-unchanged output.
func Lines(oldText, newText string) []Line {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)
	lcs := longestCommonSubsequence(oldLines, newLines)

	out := make([]Line, 0, len(oldLines)+len(newLines))
	oi, ni, li := 0, 0, 0
	for oi < len(oldLines) {
		if li < len(lcs) && oldLines[oi] == lcs[li] {
			// Flush additions that precede this common line, then emit it.
			for ni < len(newLines) && newLines[ni] != lcs[li] {
				out = append(out, Line{Op: OpAdded, Content: newLines[ni]})
				ni++
			}
			out = append(out, Line{Op: OpUnchanged, Content: oldLines[oi]})
			oi++
			ni++
			li++
			continue
		}
		out = append(out, Line{Op: OpRemoved, Content: oldLines[oi]})
		oi++
	}
	for ; ni < len(newLines); ni++ {
		out = append(out, Line{Op: OpAdded, Content: newLines[ni]})
	}
	return out
}

// splitLines splits on "\n", treating the empty string as zero lines so an
// empty document does not contribute a phantom empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

// longestCommonSubsequence returns an LCS of a and b via the standard
// dynamic-programming table, backtracked from the far corner.
func longestCommonSubsequence(a, b []string) []string {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return nil
	}

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	seq := make([]string, dp[n][m])
	for i, j, k := n, m, dp[n][m]; k > 0; {
		switch {
		case a[i-1] == b[j-1]:
			seq[k-1] = a[i-1]
			i--
			j--
			k--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return seq
}

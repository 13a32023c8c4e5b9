package validation

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// pageObject matches page dictionaries but not the /Pages tree root.
var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

// CountPages counts the page objects in an in-memory PDF. Page objects
// packed into compressed object streams are not visible to it.
func CountPages(pdf []byte) int {
	return len(pageObject.FindAllIndex(pdf, -1))
}

// pageCounter asks an external tool for the page count of a file.
type pageCounter func(ctx context.Context, path string) (int, error)

// externalCounters are consulted in order when the object scan finds nothing.
var externalCounters = []pageCounter{pdfinfoPages, ghostscriptPages}

// CountPDFPages counts the pages of a PDF file. Documents written by this
// module are counted directly; others fall back to pdfinfo or ghostscript
// when installed.
func CountPDFPages(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &DocumentError{Path: path, Op: "read", Err: err}
	}
	if count := CountPages(data); count > 0 {
		return count, nil
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, &DocumentError{Path: path, Op: "count pages", Err: fmt.Errorf("not a PDF file")}
	}

	for _, counter := range externalCounters {
		if count, err := counter(ctx, path); err == nil && count > 0 {
			return count, nil
		}
	}
	return 0, &DocumentError{Path: path, Op: "count pages", Err: ErrNoPages}
}

func pdfinfoPages(ctx context.Context, path string) (int, error) {
	out, err := exec.CommandContext(ctx, "pdfinfo", path).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo: %w", err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		value, ok := strings.CutPrefix(scanner.Text(), "Pages:")
		if !ok {
			continue
		}
		return strconv.Atoi(strings.TrimSpace(value))
	}
	return 0, fmt.Errorf("pdfinfo: no Pages line in output")
}

func ghostscriptPages(ctx context.Context, path string) (int, error) {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", path)
	out, err := exec.CommandContext(ctx, "gs", "-q", "-dNODISPLAY", "-dNOSAFER", "-c", script).Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript: %w", err)
	}
	return strconv.Atoi(strings.TrimSpace(string(out)))
}

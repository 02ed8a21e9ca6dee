package engine

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// stream writes a response body to its destination. The overwrite prompt, when
// needed, always runs before the destination is opened.
func (e *Engine) stream(desc Descriptor, opts Options, body io.Reader, contentLength *int64) error {
	dest, ok := inferDestination(desc.Key, opts.Output)
	if !ok {
		e.log.Warn("cannot infer a file name for '%s'; pass -o to choose a destination", desc.Key)
		return nil
	}

	if dest == "-" {
		_, err := io.Copy(e.stdout, body)
		return err
	}

	if _, err := os.Stat(dest); err == nil {
		if !e.confirm(fmt.Sprintf("File '%s' exists. Overwrite", dest)) {
			return nil
		}
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("open destination %s: %w", dest, err)
	}
	defer out.Close()

	length := aws.ToInt64(contentLength)
	if length > 0 {
		reporter := newProgressReporter(os.Stderr, length)
		if _, err := io.Copy(io.MultiWriter(out, reporter), body); err != nil {
			return err
		}
		reporter.finish()
		return nil
	}

	_, err = io.Copy(out, body)
	return err
}

// inferDestination picks the save path: an explicit destination wins,
// otherwise the trailing segment of the object key. Keys with no usable
// trailing segment have no inferable destination.
func inferDestination(key, output string) (string, bool) {
	if output != "" {
		return output, true
	}
	if strings.HasSuffix(key, "/") {
		return "", false
	}
	base := path.Base(key)
	if base == "." || base == "/" || base == "" {
		return "", false
	}
	return base, true
}

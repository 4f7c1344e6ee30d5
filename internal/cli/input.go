package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

const maxAvatarBytes = 2 << 20

// prompt prints label and reads one trimmed line. A final line without a
// newline is accepted.
func (a *App) prompt(label string) (string, error) {
	if _, err := fmt.Fprint(a.out, label+": "); err != nil {
		return "", err
	}
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptIfEmpty keeps a flag value that was given and asks for it otherwise.
func (a *App) promptIfEmpty(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.prompt(label)
}

// password reads without echo from a terminal, or a plain line otherwise.
func (a *App) password(label string) (string, error) {
	if a.stdinFD < 0 || !isTerminal(a.stdinFD) {
		return a.prompt(label)
	}
	if _, err := fmt.Fprint(a.out, label+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(a.stdinFD)
	fmt.Fprintln(a.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// coordinates parses an optional lat/lng pair. Both or neither must be set.
func coordinates(lat, lng string) (*float64, *float64, error) {
	if lat == "" && lng == "" {
		return nil, nil, nil
	}
	if lat == "" || lng == "" {
		return nil, nil, fmt.Errorf("-lat and -lng must be given together")
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil || la < -90 || la > 90 {
		return nil, nil, fmt.Errorf("invalid -lat %q", lat)
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil || ln < -180 || ln > 180 {
		return nil, nil, fmt.Errorf("invalid -lng %q", lng)
	}
	return &la, &ln, nil
}

// avatarDataURI reads an image file into a data URI, the form the API
// accepts for avatars.
func avatarDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if len(data) > maxAvatarBytes {
		return "", fmt.Errorf("avatar %s is larger than %d bytes", path, maxAvatarBytes)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("avatar %s is %s, not an image", path, mt.String())
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", ErrUsage, args[0])
	}
	return id, nil
}

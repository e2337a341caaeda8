package assets

import (
	"fmt"
	"os"

	"github.com/h2non/filetype"
)

// Kind is the coarse asset family a file belongs to, used by the shell to
// pick a renderable for it.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindAudio
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	case KindModel:
		return "model"
	}
	return "unknown"
}

// Detect sniffs the file's leading bytes to classify it. Files no known
// matcher recognizes are treated as model data, the common case for game
// formats.
func Detect(path string) (Kind, error) {
	file, err := os.Open(path)
	if err != nil {
		return KindUnknown, fmt.Errorf("failed to open asset file: %w", err)
	}
	defer file.Close()

	// filetype needs at most 262 bytes to match any registered type.
	head := make([]byte, 262)
	n, err := file.Read(head)
	if n == 0 && err != nil {
		return KindUnknown, fmt.Errorf("failed to read asset header %s: %w", path, err)
	}
	head = head[:n]

	switch {
	case filetype.IsImage(head):
		return KindImage, nil
	case filetype.IsAudio(head):
		return KindAudio, nil
	default:
		return KindModel, nil
	}
}

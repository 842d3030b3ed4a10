package port

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

const wavBitDepth = 16

// WAV records the beep code of the port channel into a wave file.
type WAV struct {
	out io.WriteSeeker
	enc *wav.Encoder
}

var createFileFn = func(path string) (io.WriteSeeker, error) {
	return os.Create(path)
}

// CreateWAV creates the wave file at path.
func CreateWAV(path string) (*WAV, error) {
	out, err := createFileFn(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create wave file %s", path)
	}

	return &WAV{
		out: out,
		enc: wav.NewEncoder(out, toneSampleRate, wavBitDepth, 1, 1),
	}, nil
}

// Write appends the beep code for p to the file.
func (w *WAV) Write(p []byte) (int, error) {
	samples := synthesize(p)
	if len(samples) == 0 {
		return len(p), nil
	}

	const scale = 1<<(wavBitDepth-1) - 1
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s * scale)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: toneSampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	if err := w.enc.Write(buf); err != nil {
		return 0, errors.Wrap(err, "encode beep code")
	}

	return len(p), nil
}

// Close finalizes the wave header and closes the file.
func (w *WAV) Close() error {
	if err := w.enc.Close(); err != nil {
		return errors.Wrap(err, "finalize wave file")
	}

	if c, ok := w.out.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

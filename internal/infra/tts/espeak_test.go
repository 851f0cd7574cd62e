package tts_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiji-news/internal/infra/tts"
)

// fakeEspeak writes a script that records its arguments and stdin and
// produces a tiny WAV file at the -w path.
func fakeEspeak(t *testing.T) (command, argsFile, stdinFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub requires a POSIX shell")
	}
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args")
	stdinFile = filepath.Join(dir, "stdin")
	script := `#!/bin/sh
echo "$@" > "` + argsFile + `"
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-w" ]; then shift; out="$1"; fi
  shift
done
cat > "` + stdinFile + `"
printf 'RIFF' > "$out"
`
	command = filepath.Join(dir, "espeak")
	require.NoError(t, os.WriteFile(command, []byte(script), 0o755))
	return command, argsFile, stdinFile
}

func TestEspeak_SynthesizeWAV(t *testing.T) {
	command, argsFile, stdinFile := fakeEspeak(t)
	out := filepath.Join(t.TempDir(), "audio.wav")

	err := tts.NewEspeak(command, "en").SynthesizeWAV(context.Background(), "Bula Fiji", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-s 150 -v en -w "+out+" --stdin\n", string(args))

	stdin, err := os.ReadFile(stdinFile)
	require.NoError(t, err)
	assert.Equal(t, "Bula Fiji", string(stdin))
}

func TestEspeak_CommandFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub requires a POSIX shell")
	}
	dir := t.TempDir()
	command := filepath.Join(dir, "espeak")
	require.NoError(t, os.WriteFile(command, []byte("#!/bin/sh\necho 'voice not found' >&2\nexit 1\n"), 0o755))

	err := tts.NewEspeak(command, "xx").SynthesizeWAV(context.Background(), "hi", filepath.Join(dir, "a.wav"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice not found")
}

func TestEspeak_MissingBinary(t *testing.T) {
	err := tts.NewEspeak(filepath.Join(t.TempDir(), "nope"), "en").
		SynthesizeWAV(context.Background(), "hi", filepath.Join(t.TempDir(), "a.wav"))
	assert.Error(t, err)
}

package install_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/adamwoolhether/appinstall/client"
	"github.com/adamwoolhether/appinstall/install"
)

func TestConsole_ProgressLine(t *testing.T) {
	var buf bytes.Buffer
	c := install.NewConsole(&buf, true)

	c.Status("Downloading: %s", "X.app.zip")
	c.Progress(client.Progress{Transferred: 8192, Total: 16384})
	c.Progress(client.Progress{Transferred: 16384, Total: 16384})
	c.Success("Download completed: %d bytes", 16384)

	exp := "Downloading: X.app.zip\n" +
		"\r      8192  [50.00%]" +
		"\r     16384  [100.00%]\n" +
		"Download completed: 16384 bytes\n"

	if got := buf.String(); got != exp {
		t.Errorf("output mismatch:\n got %q\nwant %q", got, exp)
	}
}

func TestConsole_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	c := install.NewConsole(&buf, true)

	c.Progress(client.Progress{Transferred: 10, Total: -1})

	if exp := "\r        10  [0.00%]"; buf.String() != exp {
		t.Errorf("output = %q, want %q", buf.String(), exp)
	}
}

func TestError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &install.Error{Step: install.StepDownload, Err: install.ErrNetworkFault, Cause: cause}

	if !errors.Is(err, install.ErrNetworkFault) || !errors.Is(err, cause) {
		t.Error("expected both the fault and the cause in the chain")
	}

	if exp := "download: network fault: connection reset"; err.Error() != exp {
		t.Errorf("Error() = %q, want %q", err.Error(), exp)
	}

	noCause := &install.Error{Step: install.StepPrecondition, Err: install.ErrAlreadyInstalled, Detail: "/Applications/X.app"}
	if exp := "precondition: already installed: /Applications/X.app"; noCause.Error() != exp {
		t.Errorf("Error() = %q, want %q", noCause.Error(), exp)
	}
}

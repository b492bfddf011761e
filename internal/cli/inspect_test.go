package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/geom"
)

func TestSummarize(t *testing.T) {
	sp := newTestPad(t)
	sp.PointerDown(geom.Pt(10, 10), 0)
	sp.PointerUp(geom.Pt(60, 60))
	sp.PointerDown(geom.Pt(100, 10), 0)
	sp.PointerUp(geom.Pt(150, 60))
	sp.Undo()
	if _, err := sp.AddText("hi", 1, nil); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	summarize(&buf, sp.ToObject(false))
	out := buf.String()
	for _, want := range []string{
		"canvas   200x120, 2 layers",
		"objects  3",
		"layer 0  stroke 1 alive, 1 removed",
		"layer 1  text   1 alive, 0 removed",
		"history  2 entries, cursor 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestInspectCmd(t *testing.T) {
	path := writeFile(t, "state.json", `{"layerCount":1,"width":50,"height":40,"drawables":[]}`)
	t.Cleanup(func() { sketchpad.SetLogger(nil) })
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"inspect", path})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out.String(), "canvas   50x40, 1 layers") {
		t.Errorf("output = %q", out.String())
	}

	cmd = newRootCmd()
	cmd.SetArgs([]string{"inspect"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("inspect without a file should fail")
	}
}

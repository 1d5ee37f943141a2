package paintvk

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

//fakeBackend records the protocol calls renderTick makes, in order
type fakeBackend struct {
	calls         []string
	stale_acquire bool
	stale_present bool
	submit_err    error
}

func (f *fakeBackend) waitFence(slot int) error {
	f.calls = append(f.calls, fmt.Sprintf("wait:%d", slot))
	return nil
}

func (f *fakeBackend) acquireImage(slot int) (uint32, bool, error) {
	f.calls = append(f.calls, fmt.Sprintf("acquire:%d", slot))
	return 0, f.stale_acquire, nil
}

func (f *fakeBackend) resetFence(slot int) error {
	f.calls = append(f.calls, fmt.Sprintf("reset:%d", slot))
	return nil
}

func (f *fakeBackend) submit(slot int, image uint32) error {
	f.calls = append(f.calls, fmt.Sprintf("submit:%d", slot))
	return f.submit_err
}

func (f *fakeBackend) present(slot int, image uint32) (bool, error) {
	f.calls = append(f.calls, fmt.Sprintf("present:%d", slot))
	return f.stale_present, nil
}

func (f *fakeBackend) recreate() error {
	f.calls = append(f.calls, "recreate")
	return nil
}

func TestRenderTickOrdering(t *testing.T) {
	backend := &fakeBackend{}

	completed, err := renderTick(backend, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completed {
		t.Error("expected a completed frame")
	}

	want := []string{"wait:0", "acquire:0", "reset:0", "submit:0", "present:0"}
	if !reflect.DeepEqual(backend.calls, want) {
		t.Errorf("wrong call order: got %v, want %v", backend.calls, want)
	}
}

func TestRenderTickStaleAcquireSkipsFrame(t *testing.T) {
	backend := &fakeBackend{stale_acquire: true}

	completed, err := renderTick(backend, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completed {
		t.Error("a skipped frame must not count as completed")
	}

	//The fence stays signaled: no reset, no submit, no present
	want := []string{"wait:1", "acquire:1", "recreate"}
	if !reflect.DeepEqual(backend.calls, want) {
		t.Errorf("wrong call order: got %v, want %v", backend.calls, want)
	}
}

func TestRenderTickStalePresentRecreatesAfterSubmit(t *testing.T) {
	backend := &fakeBackend{stale_present: true}

	completed, err := renderTick(backend, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completed {
		t.Error("a submitted frame counts as completed even when present is stale")
	}

	want := []string{"wait:0", "acquire:0", "reset:0", "submit:0", "present:0", "recreate"}
	if !reflect.DeepEqual(backend.calls, want) {
		t.Errorf("wrong call order: got %v, want %v", backend.calls, want)
	}
}

func TestRenderTickSubmitError(t *testing.T) {
	boom := errors.New("queue submit failed")
	backend := &fakeBackend{submit_err: boom}

	completed, err := renderTick(backend, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected submit error, got %v", err)
	}
	if completed {
		t.Error("a failed submission must not count as completed")
	}

	want := []string{"wait:0", "acquire:0", "reset:0", "submit:0"}
	if !reflect.DeepEqual(backend.calls, want) {
		t.Errorf("wrong call order: got %v, want %v", backend.calls, want)
	}
}

func TestClassifyPresent(t *testing.T) {
	cases := []struct {
		name           string
		ret            vk.Result
		resize_pending bool
		want_stale     bool
		want_err       bool
	}{
		{name: "success", ret: vk.Success},
		{name: "pending resize after success", ret: vk.Success, resize_pending: true, want_stale: true},
		{name: "out of date", ret: vk.ErrorOutOfDate, want_stale: true},
		{name: "suboptimal", ret: vk.Suboptimal, want_stale: true},
		{name: "device lost", ret: vk.ErrorDeviceLost, want_err: true},
		{name: "device lost during resize", ret: vk.ErrorDeviceLost, resize_pending: true, want_err: true},
	}

	for _, tc := range cases {
		stale, err := classifyPresent(tc.ret, tc.resize_pending)
		if tc.want_err {
			if err == nil {
				t.Errorf("%s: expected an error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if stale != tc.want_stale {
			t.Errorf("%s: stale = %v, want %v", tc.name, stale, tc.want_stale)
		}
	}
}

func TestFrameSyncAdvanceWraps(t *testing.T) {
	var frames FrameSync

	if frames.Current() != 0 {
		t.Fatalf("expected initial slot 0, got %d", frames.Current())
	}
	frames.Advance()
	if frames.Current() != 1 {
		t.Errorf("expected slot 1 after one advance, got %d", frames.Current())
	}
	frames.Advance()
	if frames.Current() != 0 {
		t.Errorf("expected wrap to slot 0, got %d", frames.Current())
	}
}

package paintvk

import (
	"reflect"
	"testing"
)

func TestDestructorStackUnwindsInReverse(t *testing.T) {
	stack := NewDestructorStack()
	for _, step := range EngineCreateOrder {
		stack.Push(step, func() {})
	}

	if got := stack.Names(); !reflect.DeepEqual(got, EngineCreateOrder) {
		t.Errorf("creation order mismatch: got %v", got)
	}

	order := stack.Unwind()
	if len(order) != len(EngineCreateOrder) {
		t.Fatalf("expected %d destructors, ran %d", len(EngineCreateOrder), len(order))
	}
	for i, name := range order {
		want := EngineCreateOrder[len(EngineCreateOrder)-1-i]
		if name != want {
			t.Errorf("teardown step %d: got %s, want %s", i, name, want)
		}
	}
	if stack.Len() != 0 {
		t.Errorf("stack not empty after unwind, %d entries left", stack.Len())
	}
}

func TestDestructorStackRunsEveryDestructor(t *testing.T) {
	stack := NewDestructorStack()
	var ran []string

	stack.Push(StepInstance, func() { ran = append(ran, StepInstance) })
	stack.Push(StepSurface, func() { ran = append(ran, StepSurface) })
	stack.Push(StepDevice, func() { ran = append(ran, StepDevice) })

	stack.Unwind()

	want := []string{StepDevice, StepSurface, StepInstance}
	if !reflect.DeepEqual(ran, want) {
		t.Errorf("destructors ran in order %v, want %v", ran, want)
	}
}

func TestUnwindToleratesUnbuiltObjects(t *testing.T) {
	//Startup can fail between pushing a destructor and building its object,
	//the unwind must still run cleanly over the nil handles
	var renderpass *CoreRenderPass
	var pipeline *CorePipeline

	stack := NewDestructorStack()
	stack.Push(StepRenderPass, func() { renderpass.Destroy(nil) })
	stack.Push(StepPipelineLayout, func() { pipeline.DestroyLayout(nil) })
	stack.Push(StepPipeline, func() { pipeline.DestroyPipeline(nil) })

	order := stack.Unwind()
	if len(order) != 3 {
		t.Errorf("expected 3 destructors to run, got %d", len(order))
	}
}

func TestDeviceDestroyedBeforeInstance(t *testing.T) {
	//The logical device must die while its instance still exists, and the
	//surface must outlive the swapchain that presents to it
	index := make(map[string]int)
	for i, step := range EngineCreateOrder {
		index[step] = i
	}

	after := [][2]string{
		{StepInstance, StepDevice},
		{StepInstance, StepSurface},
		{StepSurface, StepSwapchain},
		{StepDevice, StepSwapchain},
		{StepSwapchain, StepImageViews},
		{StepImageViews, StepFramebuffers},
		{StepRenderPass, StepPipeline},
		{StepCommandPool, StepFrameSync},
	}
	for _, pair := range after {
		if index[pair[0]] >= index[pair[1]] {
			t.Errorf("%s must be created before %s", pair[0], pair[1])
		}
	}
}

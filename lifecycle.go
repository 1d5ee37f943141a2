package paintvk

//Teardown ordering is an invariant, not a convention. Destroying a swapchain
//while its images back live framebuffers, or an instance before its device, is
//undefined behavior at the API level. Every resource group the engine creates
//pushes a named destructor here and shutdown unwinds the stack, so destruction
//is structurally the exact reverse of creation.

const (
	StepInstance       = "instance"
	StepDebugCallback  = "debug_callback"
	StepSurface        = "surface"
	StepDevice         = "device"
	StepSwapchain      = "swapchain"
	StepImageViews     = "image_views"
	StepRenderPass     = "render_pass"
	StepPipelineLayout = "pipeline_layout"
	StepPipeline       = "pipeline"
	StepFramebuffers   = "framebuffers"
	StepCommandPool    = "command_pool"
	StepFrameSync      = "frame_sync"
)

//EngineCreateOrder is the fixed order NewCoreEngine builds the static frame
//graph in. The debug callback entry is skipped when validation is off
var EngineCreateOrder = []string{
	StepInstance,
	StepDebugCallback,
	StepSurface,
	StepDevice,
	StepSwapchain,
	StepImageViews,
	StepRenderPass,
	StepPipelineLayout,
	StepPipeline,
	StepFramebuffers,
	StepCommandPool,
	StepFrameSync,
}

type destructorEntry struct {
	name    string
	destroy func()
}

//DestructorStack owns the teardown order for every handle pushed onto it
type DestructorStack struct {
	entries []destructorEntry
}

func NewDestructorStack() *DestructorStack {
	return &DestructorStack{}
}

func (s *DestructorStack) Push(name string, destroy func()) {
	s.entries = append(s.entries, destructorEntry{name: name, destroy: destroy})
}

//Names returns the creation order of the pushed entries
func (s *DestructorStack) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

//Unwind destroys every entry last-in first-out and returns the order the
//destructors ran in. The stack is empty afterwards
func (s *DestructorStack) Unwind() []string {
	order := make([]string, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		s.entries[i].destroy()
		order = append(order, s.entries[i].name)
	}
	s.entries = nil
	return order
}

func (s *DestructorStack) Len() int {
	return len(s.entries)
}

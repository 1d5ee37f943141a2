package paintvk

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

//CoreDisplay binds the native GLFW window to the vulkan surface it presents
//to. The window system is a collaborator, the display only consumes its
//surface handle, logical size and required instance extensions
type CoreDisplay struct {
	window  *glfw.Window
	surface vk.Surface
}

func NewCoreDisplay(window *glfw.Window) *CoreDisplay {
	var core CoreDisplay
	core.window = window
	return &core
}

//CreateSurface derives the presentation surface from the native window
func (core *CoreDisplay) CreateSurface(instance vk.Instance) error {
	surfPtr, err := core.window.CreateWindowSurface(instance, nil)
	if err != nil {
		return fmt.Errorf("failed to create vulkan window surface: %w", err)
	}
	core.surface = vk.SurfaceFromPointer(surfPtr)
	return nil
}

func (core *CoreDisplay) Surface() vk.Surface {
	return core.surface
}

//LogicalSize is the window's current framebuffer size in pixels, used as the
//swapchain extent when the surface reports the undefined sentinel
func (core *CoreDisplay) LogicalSize() (int, int) {
	return core.window.GetFramebufferSize()
}

//RequiredExtensions lists the instance extensions the window system needs for
//surface creation
func (core *CoreDisplay) RequiredExtensions() []string {
	return core.window.GetRequiredInstanceExtensions()
}

//WaitForValidSize blocks while the framebuffer is zero sized, a minimized
//window cannot back a swapchain
func (core *CoreDisplay) WaitForValidSize() {
	w, h := core.window.GetFramebufferSize()
	for w == 0 || h == 0 {
		glfw.WaitEvents()
		w, h = core.window.GetFramebufferSize()
	}
}

func (core *CoreDisplay) DestroySurface(instance vk.Instance) {
	if core.surface != vk.NullSurface {
		vk.DestroySurface(instance, core.surface, nil)
		core.surface = vk.NullSurface
	}
}

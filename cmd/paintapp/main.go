package main

import (
	"runtime"

	"github.com/andewx/paintvk"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
	"github.com/xlab/catcher"
)

const (
	appName      = "PaintApp"
	windowWidth  = 800
	windowHeight = 600
)

func init() {
	//GLFW event handling and vulkan surface creation must stay on the main
	//OS thread
	runtime.LockOSThread()
}

func main() {
	defer catcher.Catch(
		catcher.RecvLog(true),
		catcher.RecvDie(1),
	)

	validation, err := paintvk.ParseValidationEnv()
	if err != nil {
		paintvk.Fatal(err)
	}

	if err := glfw.Init(); err != nil {
		paintvk.Fatal(err)
	}
	defer glfw.Terminate()

	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		paintvk.Fatal(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(windowWidth, windowHeight, appName, nil, nil)
	if err != nil {
		paintvk.Fatal(err)
	}

	config := paintvk.NewCoreConfig(appName, windowWidth, windowHeight)
	config.EnableValidation = validation
	config.VertexSPIRV = paintvk.LoadShaderBytes("shaders/vert.spv")
	config.FragmentSPIRV = paintvk.LoadShaderBytes("shaders/frag.spv")

	engine, err := paintvk.NewCoreEngine(config, window)
	if err != nil {
		paintvk.Fatal(err)
	}
	defer engine.Destroy()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width int, height int) {
		engine.NotifyResize()
	})
	window.SetRefreshCallback(func(w *glfw.Window) {
		if err := engine.RenderFrame(); err != nil {
			paintvk.Fatal(err, engine.Destroy, glfw.Terminate)
		}
	})

	for !window.ShouldClose() {
		if err := engine.RenderFrame(); err != nil {
			paintvk.Fatal(err, engine.Destroy, glfw.Terminate)
		}
		glfw.PollEvents()
	}
}

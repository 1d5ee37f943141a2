package paintvk

import (
	"fmt"
	"io/ioutil"

	vk "github.com/vulkan-go/vulkan"
)

//ShaderProgram holds the vertex and fragment modules for one pipeline build.
//Modules are build-time inputs only, the pipeline builder destroys them as
//soon as the pipeline exists
type ShaderProgram struct {
	vertex_module   vk.ShaderModule
	fragment_module vk.ShaderModule
}

//NewShaderProgram creates the two shader modules from opaque compiled SPIR-V
//bytes. The engine does not compile shaders, empty placeholder bytecode is
//passed through untouched
func NewShaderProgram(device *CoreDevice, vertex_code, fragment_code []byte) (*ShaderProgram, error) {
	var pg ShaderProgram

	vertex, err := newShaderModule(device, vertex_code)
	if err != nil {
		return nil, fmt.Errorf("vertex stage: %w", err)
	}
	fragment, err := newShaderModule(device, fragment_code)
	if err != nil {
		vk.DestroyShaderModule(device.Handle(), vertex, nil)
		return nil, fmt.Errorf("fragment stage: %w", err)
	}

	pg.vertex_module = vertex
	pg.fragment_module = fragment
	return &pg, nil
}

func newShaderModule(device *CoreDevice, code []byte) (vk.ShaderModule, error) {
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(device.Handle(), &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}, nil, &module)
	if isError(ret) {
		return module, fmt.Errorf("unable to create shader module: %w", NewError(ret))
	}
	return module, nil
}

//Destroy releases both modules, called by the pipeline builder after creation
func (pg *ShaderProgram) Destroy(device *CoreDevice) {
	vk.DestroyShaderModule(device.Handle(), pg.vertex_module, nil)
	vk.DestroyShaderModule(device.Handle(), pg.fragment_module, nil)
}

//LoadShaderBytes reads compiled SPIR-V from disk. Missing files fall back to
//empty placeholder bytecode, matching the engine's current shader-less draw
func LoadShaderBytes(path string) []byte {
	buffer, err := ioutil.ReadFile(path)
	if err != nil {
		return nil
	}
	return buffer
}

package paintvk

import (
	"fmt"
	"os"
)

//ValidationEnv is the single environment toggle for the validation layers.
//Recognized values are "1" and "0"; an unset variable reads as "0" and any
//other value is a configuration error
const ValidationEnv = "VALIDATION_LAYERS"

//CoreConfig holds the startup configuration for a CoreEngine. The window
//dimensions are the logical size used when the surface reports an undefined
//current extent
type CoreConfig struct {
	AppName          string
	Width            int
	Height           int
	EnableValidation bool

	//SPIR-V words for the two pipeline stages, passed through opaque. Empty
	//slices build empty placeholder modules
	VertexSPIRV   []byte
	FragmentSPIRV []byte
}

func NewCoreConfig(app_name string, width, height int) CoreConfig {
	return CoreConfig{
		AppName: app_name,
		Width:   width,
		Height:  height,
	}
}

//ParseValidationEnv reads the VALIDATION_LAYERS toggle
func ParseValidationEnv() (bool, error) {
	return parseValidationToggle(os.Getenv(ValidationEnv))
}

func parseValidationToggle(value string) (bool, error) {
	switch value {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("wrong value %q for %s environmental value", value, ValidationEnv)
	}
}

package sequence

import (
	"k8s.io/examples/AI/sequencecloud/pkg/engine"
	"k8s.io/examples/AI/sequencecloud/pkg/modelconfig"
)

const (
	StartInput  = "START"
	ReadyInput  = "READY"
	InputName   = "INPUT"
	OutputName  = "OUTPUT"
	DelayMsName = "execute_delay_ms"
)

// validateConfig checks that the model is something we can handle.
// Checks run in a fixed order and the first failure is returned.
func validateConfig(config *modelconfig.ModelConfig, gpuDevice int) error {
	// Execution on GPUs is not supported; the computation is trivial.
	if gpuDevice != engine.NoGPUDevice {
		return engine.NewError(engine.KindGPUNotSupported, "", nil)
	}

	if !config.HasSequenceBatching() {
		return engine.NewError(engine.KindSequenceBatcher, "", nil)
	}

	controls := config.SequenceBatching.ControlInputs
	if len(controls) != 2 {
		return engine.NewError(engine.KindModelControl, "", nil)
	}
	if !((controls[0].Name == StartInput && controls[1].Name == ReadyInput) ||
		(controls[0].Name == ReadyInput && controls[1].Name == StartInput)) {
		return engine.NewError(engine.KindModelControl, "", nil)
	}

	// One INT32 input named INPUT, a vector of any length.
	if len(config.Inputs) != 1 || len(config.Inputs[0].Dims) != 1 {
		return engine.NewError(engine.KindInput, "", nil)
	}
	input := config.Inputs[0]
	if input.DataType != modelconfig.TypeInt32 {
		return engine.NewError(engine.KindInputOutputDataType, input.Name, nil)
	}
	if input.Name != InputName {
		return engine.NewError(engine.KindInputName, input.Name, nil)
	}

	// One INT32 output named OUTPUT, shaped like the input.
	if len(config.Outputs) != 1 || len(config.Outputs[0].Dims) != 1 ||
		config.Outputs[0].Dims[0] != input.Dims[0] {
		return engine.NewError(engine.KindOutput, "", nil)
	}
	output := config.Outputs[0]
	if output.DataType != modelconfig.TypeInt32 {
		return engine.NewError(engine.KindInputOutputDataType, output.Name, nil)
	}
	if output.Name != OutputName {
		return engine.NewError(engine.KindOutputName, output.Name, nil)
	}

	return nil
}

package pipeline

import "fmt"

// Stage names a step of a run.
type Stage string

const (
	StageLoadKeyMaterial Stage = "LoadKeyMaterial"
	StageDeriveKeys      Stage = "DeriveKeys"
	StageEncode          Stage = "Encode"
	StageEncrypt         Stage = "Encrypt"
	StageDecrypt         Stage = "Decrypt"
	StageDecode          Stage = "Decode"
	StagePublish         Stage = "Publish"
)

// Stages lists every stage in execution order.
var Stages = []Stage{
	StageLoadKeyMaterial,
	StageDeriveKeys,
	StageEncode,
	StageEncrypt,
	StageDecrypt,
	StageDecode,
	StagePublish,
}

// StageError identifies the stage a run failed in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

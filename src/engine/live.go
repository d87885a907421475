package engine

// This file contains the live-correction protocol: the messages a probe
// running inside the live host emits, and how they are merged into the
// database. Messages are JSON objects discriminated by "type":
//
//	{"type": "Version", "version": [0, 600, 1, 6000]}
//	{"type": "PatchDescriptors", "className": "Part",
//	 "descriptors": {"Anchored": {"scriptability": "None",
//	                              "defaultValue": {"Type": "Bool", "Value": false}}}}

import (
	"encoding/json"
	"errors"
	"fmt"

	"rbxreflect/src/helpers"
	"rbxreflect/src/models"
	"rbxreflect/src/variant"

	"go.uber.org/zap"
)

const (
	MessageTypeVersion          = "Version"
	MessageTypePatchDescriptors = "PatchDescriptors"
)

// PluginMessage is one decoded probe message: *VersionMessage or
// *PatchDescriptorsMessage.
type PluginMessage interface {
	MessageType() string
}

// VersionMessage reports the live host's version.
type VersionMessage struct {
	Version [4]uint32
}

// PatchDescriptorsMessage reports corrections for the properties of one class.
type PatchDescriptorsMessage struct {
	ClassName   string
	Descriptors map[string]models.DescriptorPatch
}

func (*VersionMessage) MessageType() string          { return MessageTypeVersion }
func (*PatchDescriptorsMessage) MessageType() string { return MessageTypePatchDescriptors }

type messageEnvelope struct {
	Type *string `json:"type"`
}

type versionJSON struct {
	Version []uint32 `json:"version"`
}

type patchDescriptorsJSON struct {
	ClassName   *string                        `json:"className"`
	Descriptors map[string]descriptorPatchJSON `json:"descriptors"`
}

type descriptorPatchJSON struct {
	DefaultValue  variant.Tagged        `json:"defaultValue"`
	Scriptability *models.Scriptability `json:"scriptability"`
}

// DecodeMessage decodes one raw probe payload.
func DecodeMessage(payload []byte) (PluginMessage, error) {
	var envelope messageEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, err
	}
	if envelope.Type == nil {
		return nil, errors.New("missing message type")
	}

	switch *envelope.Type {
	case MessageTypeVersion:
		var raw versionJSON
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		if len(raw.Version) != 4 {
			return nil, fmt.Errorf("version must have 4 components, got %d", len(raw.Version))
		}
		msg := &VersionMessage{}
		copy(msg.Version[:], raw.Version)
		return msg, nil

	case MessageTypePatchDescriptors:
		var raw patchDescriptorsJSON
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		if raw.ClassName == nil {
			return nil, errors.New("missing className")
		}
		if raw.Descriptors == nil {
			return nil, errors.New("missing descriptors")
		}
		msg := &PatchDescriptorsMessage{
			ClassName:   *raw.ClassName,
			Descriptors: make(map[string]models.DescriptorPatch, len(raw.Descriptors)),
		}
		for propertyName, patch := range raw.Descriptors {
			msg.Descriptors[propertyName] = models.DescriptorPatch{
				DefaultValue:  patch.DefaultValue.Value,
				Scriptability: patch.Scriptability,
			}
		}
		return msg, nil
	}

	return nil, fmt.Errorf("unknown message type %q", *envelope.Type)
}

// DecodeMessages decodes every payload in order. The first payload that
// fails to decode is returned as a *ProtocolViolationError.
func DecodeMessages(payloads [][]byte) ([]PluginMessage, error) {
	messages := make([]PluginMessage, 0, len(payloads))
	for i, payload := range payloads {
		msg, err := DecodeMessage(payload)
		if err != nil {
			return nil, &ProtocolViolationError{Index: i, Payload: payload, Err: err}
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// ProcessMessages decodes the probe's payloads and merges them into db in
// arrival order. A payload that fails to decode aborts the whole sequence
// before any message is merged.
func ProcessMessages(db *models.ReflectionDatabase, payloads [][]byte, logger *zap.SugaredLogger) error {
	messages, err := DecodeMessages(payloads)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		ApplyMessage(db, msg, logger)
	}

	logger.Infow("Applied live corrections",
		zap.Int("messages", len(messages)),
		zap.String("version", db.VersionString()))
	return nil
}

// ApplyMessage merges one decoded message into db.
//
// A class unknown to db drops the whole message. A default value is stored
// even when the property itself is unknown; a scriptability correction only
// applies to an existing property.
func ApplyMessage(db *models.ReflectionDatabase, msg PluginMessage, logger *zap.SugaredLogger) {
	switch msg := msg.(type) {
	case *VersionMessage:
		db.Version = msg.Version

	case *PatchDescriptorsMessage:
		class, ok := db.Classes[msg.ClassName]
		if !ok {
			logger.Debugf("Ignoring corrections for class %s, which is not in the dump", msg.ClassName)
			return
		}

		for propertyName, patch := range msg.Descriptors {
			if patch.DefaultValue != nil {
				class.DefaultProperties[propertyName] = patch.DefaultValue
			}

			if patch.Scriptability == nil {
				continue
			}
			if descriptor, ok := class.Properties[propertyName]; ok {
				descriptor.Scriptability = *patch.Scriptability
			} else {
				logger.Debugf("Dropping scriptability for unknown property %s.%s", msg.ClassName, propertyName)
			}
		}
	}
}

// ProbeRequest tells the probe which classes and properties to observe.
type ProbeRequest struct {
	Classes map[string][]string `json:"classes"`
}

// NewProbeRequest lists every class of db with its property names, sorted.
func NewProbeRequest(db *models.ReflectionDatabase) *ProbeRequest {
	request := &ProbeRequest{Classes: make(map[string][]string, len(db.Classes))}
	for name, class := range db.Classes {
		request.Classes[name] = helpers.SortedKeys(class.Properties)
	}
	return request
}

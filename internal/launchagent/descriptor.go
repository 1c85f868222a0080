package launchagent

import (
	"fmt"

	"howett.net/plist"
)

// ProcessTypeInteractive marks an agent that backs user-facing UI.
const ProcessTypeInteractive = "Interactive"

// Descriptor is the launchd job definition written to the agents directory.
// launchd starts ProgramArguments once at login; it does not supervise it.
type Descriptor struct {
	Label            string   `plist:"Label"`
	ProgramArguments []string `plist:"ProgramArguments"`
	RunAtLoad        bool     `plist:"RunAtLoad"`
	KeepAlive        bool     `plist:"KeepAlive"`
	ProcessType      string   `plist:"ProcessType"`
}

// NewDescriptor returns the login-item descriptor for label launching
// program.
func NewDescriptor(label, program string) Descriptor {
	return Descriptor{
		Label:            label,
		ProgramArguments: []string{program},
		RunAtLoad:        true,
		KeepAlive:        false,
		ProcessType:      ProcessTypeInteractive,
	}
}

// Program returns the executable launchd will start, or "" if none is set.
func (d Descriptor) Program() string {
	if len(d.ProgramArguments) == 0 {
		return ""
	}
	return d.ProgramArguments[0]
}

// Render encodes d as an XML property list. The output is deterministic for
// equal descriptors.
func Render(d Descriptor) ([]byte, error) {
	out, err := plist.MarshalIndent(d, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encode descriptor: %w", err)
	}
	return append(out, '\n'), nil
}

// Parse decodes a property list in any of the formats launchd accepts.
func Parse(data []byte) (Descriptor, error) {
	var d Descriptor
	if _, err := plist.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("decode descriptor: %w", err)
	}
	return d, nil
}

package help

import (
	_ "embed"
	"encoding/json"
)

//go:embed formats.json
var formatContent []byte

type MinMax struct {
	Min float64
	Max float64
}

type LutFormat struct {
	Name        string
	Extension   string
	Dimensions  int
	Description string
	Domain      *MinMax
}

type ImageFormat struct {
	Name        string
	Extension   string
	Description string
}

type Help struct {
	LutFormats   []LutFormat
	ImageFormats []ImageFormat
}

var helpStruct Help

func GetHelp() (Help, error) {
	if helpStruct.LutFormats != nil {
		return helpStruct, nil
	}
	err := json.Unmarshal(formatContent, &helpStruct)
	return helpStruct, err
}

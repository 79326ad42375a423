package serviceControllers

import (
	"slices"

	"github.com/junaidrashid-git/storefront-api/models"
)

// Manufacturing service types.
const (
	TypeCNCMachining = "cnc-machining"
	TypeLaserCutting = "laser-cutting"
	TypeDesigning    = "designing"
	Type3DPrinting   = "3d-printing"
)

var (
	cutTypes    = []string{"standard", "engraving", "marking"}
	designTypes = []string{"2d", "3d"}
	printTypes  = []string{"fdm", "sla"}
)

type manufacturingInput struct {
	ServiceType   string `json:"serviceType" binding:"required,oneof=cnc-machining laser-cutting designing 3d-printing"`
	Material      string `json:"material" binding:"required"`
	SurfaceFinish bool   `json:"surfaceFinish"`
	Quantity      int    `json:"quantity" binding:"min=1"`
	Remarks       string `json:"remarks"`

	// cnc-machining
	Tolerance         string `json:"tolerance"`
	ThreadingRequired bool   `json:"threadingRequired"`
	// laser-cutting
	Thickness string `json:"thickness"`
	CutType   string `json:"cutType"`
	// designing
	DesignType string `json:"designType"`
	Revisions  int    `json:"revisions"`
	// 3d-printing
	PrintType string `json:"printType"`
	Color     string `json:"color"`

	File *fileInput `json:"file"`
}

func (in *manufacturingInput) problems() []string {
	var out []string
	switch in.ServiceType {
	case TypeCNCMachining:
		if in.Tolerance == "" {
			out = append(out, "tolerance is required")
		}
	case TypeLaserCutting:
		if in.Thickness == "" {
			out = append(out, "thickness is required")
		}
		if !slices.Contains(cutTypes, in.CutType) {
			out = append(out, "cutType must be one of: standard, engraving, marking")
		}
	case TypeDesigning:
		if !slices.Contains(designTypes, in.DesignType) {
			out = append(out, "designType must be one of: 2d, 3d")
		}
		if in.Revisions < 1 {
			out = append(out, "revisions must be at least 1")
		}
	case Type3DPrinting:
		if !slices.Contains(printTypes, in.PrintType) {
			out = append(out, "printType must be one of: fdm, sla")
		}
	}
	return out
}

func (in *manufacturingInput) details() models.JSONMap {
	d := models.JSONMap{
		"type":          in.ServiceType,
		"material":      in.Material,
		"surfaceFinish": in.SurfaceFinish,
		"quantity":      in.Quantity,
		"remarks":       in.Remarks,
	}
	switch in.ServiceType {
	case TypeCNCMachining:
		d["tolerance"] = in.Tolerance
		d["threadingRequired"] = in.ThreadingRequired
	case TypeLaserCutting:
		d["thickness"] = in.Thickness
		d["cutType"] = in.CutType
	case TypeDesigning:
		d["designType"] = in.DesignType
		d["revisions"] = in.Revisions
	case Type3DPrinting:
		d["printType"] = in.PrintType
		d["color"] = in.Color
	}
	return d
}

func (in *manufacturingInput) attachment() *fileInput { return in.File }

type extraConnector struct {
	HousingPart        string `json:"housingPart"`
	TerminalPartNumber string `json:"terminalPartNumber"`
}

type connectorInput struct {
	HousingPart          string           `json:"housingPart" binding:"required"`
	TerminalPartNumber   string           `json:"terminalPartNumber" binding:"required"`
	AdditionalConnectors []extraConnector `json:"additionalConnectors"`
}

type wireInput struct {
	AWG              string `json:"awg" binding:"required"`
	Length           string `json:"length" binding:"required"`
	Color            string `json:"color" binding:"required"`
	Twisted          bool   `json:"twisted"`
	CustomLength     string `json:"customLength"`
	CustomLengthUnit string `json:"customLengthUnit"`
	CustomColor      string `json:"customColor"`
}

type wiringHarnessInput struct {
	LeftConnector   connectorInput `json:"leftConnector"`
	Wire            wireInput      `json:"wire"`
	RightConnector  connectorInput `json:"rightConnector"`
	Quantity        int            `json:"quantity" binding:"min=1"`
	AdditionalNotes string         `json:"additionalNotes"`
	File            *fileInput     `json:"file"`
}

func (in *wiringHarnessInput) problems() []string { return nil }

func (in *wiringHarnessInput) details() models.JSONMap {
	return models.JSONMap{
		"type":            TypeWiringHarness,
		"leftConnector":   in.LeftConnector,
		"wire":            in.Wire,
		"rightConnector":  in.RightConnector,
		"quantity":        in.Quantity,
		"additionalNotes": in.AdditionalNotes,
	}
}

func (in *wiringHarnessInput) attachment() *fileInput { return in.File }

type dimensions struct {
	H string `json:"H" binding:"required"`
	W string `json:"W" binding:"required"`
	L string `json:"L" binding:"required"`
}

type batteryInput struct {
	Chemistry       string     `json:"chemistry" binding:"required,oneof=NCM NCA LifePO4 LIPO"`
	CellBrand       string     `json:"cellBrand" binding:"required"`
	SeriesConfig    string     `json:"seriesConfig" binding:"required"`
	ParallelConfig  string     `json:"parallelConfig" binding:"required"`
	NormalDischarge string     `json:"normalDischarge" binding:"required"`
	PeakDischarge   string     `json:"peakDischarge" binding:"required"`
	Charging        string     `json:"charging" binding:"required"`
	LifeCycle       string     `json:"lifeCycle" binding:"required"`
	PackVoltage     string     `json:"packVoltage" binding:"required"`
	BMSChoice       string     `json:"bmsChoice" binding:"required"`
	ModulusCount    string     `json:"modulusCount" binding:"required"`
	Dimensions      dimensions `json:"dimensions"`
	AdditionalInfo  string     `json:"additionalInfo"`
	File            *fileInput `json:"file"`
}

func (in *batteryInput) problems() []string { return nil }

func (in *batteryInput) details() models.JSONMap {
	return models.JSONMap{
		"type":            TypeBatteryPack,
		"chemistry":       in.Chemistry,
		"cellBrand":       in.CellBrand,
		"seriesConfig":    in.SeriesConfig,
		"parallelConfig":  in.ParallelConfig,
		"normalDischarge": in.NormalDischarge,
		"peakDischarge":   in.PeakDischarge,
		"charging":        in.Charging,
		"lifeCycle":       in.LifeCycle,
		"packVoltage":     in.PackVoltage,
		"bmsChoice":       in.BMSChoice,
		"modulusCount":    in.ModulusCount,
		"dimensions":      in.Dimensions,
		"additionalInfo":  in.AdditionalInfo,
	}
}

func (in *batteryInput) attachment() *fileInput { return in.File }

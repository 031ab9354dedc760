package models

// TargetParams are the query parameters shared by every sweep operation
type TargetParams struct {
	Resistance   float64 `query:"resistance" default:"40" minimum:"10" maximum:"100" doc:"Target resistance in Ohm"`
	Reactance    float64 `query:"reactance" default:"13" minimum:"-50" maximum:"50" doc:"Target reactance in Ohm"`
	FrequencyGHz float64 `query:"frequency_ghz" default:"2.4" minimum:"0.1" maximum:"6" doc:"Operating frequency in GHz"`
}

// SweepRequest represents a request to compute a matching sweep
type SweepRequest struct {
	TargetParams
	Top int `query:"top" default:"0" minimum:"0" doc:"Return only the N best points, 0 returns every sample"`
}

// TargetBody echoes the requested target
type TargetBody struct {
	ResistanceOhms float64 `json:"resistance_ohms" doc:"Target resistance in Ohm"`
	ReactanceOhms  float64 `json:"reactance_ohms" doc:"Target reactance in Ohm"`
	FrequencyGHz   float64 `json:"frequency_ghz" doc:"Operating frequency in GHz"`
}

// SweepPoint is one sample of a sweep
type SweepPoint struct {
	InductanceNH   float64  `json:"inductance_nh" doc:"Shunt inductance in nH"`
	CapacitancePF  *float64 `json:"capacitance_pf" doc:"Series capacitance in pF, null when no capacitor is needed"`
	NoCapacitor    bool     `json:"no_capacitor" doc:"True when the required reactance is exactly zero"`
	MatchErrorOhms float64  `json:"match_error_ohms" minimum:"0" doc:"Magnitude of Zin - Ztarget in Ohm"`
}

// SweepResponseBody is the body of the sweep response
type SweepResponseBody struct {
	RunID          string       `json:"run_id" doc:"Sweep run identifier"`
	Title          string       `json:"title" example:"Matching for Z = 40 + j13 at 2.40 GHz" doc:"Plot title"`
	Target         TargetBody   `json:"target" doc:"Requested target impedance"`
	LoadResistance float64      `json:"load_resistance" doc:"Fixed load resistance in Ohm"`
	Samples        int          `json:"samples" doc:"Number of inductance samples in the sweep"`
	Best           *SweepPoint  `json:"best,omitempty" doc:"Sample with the lowest match error"`
	ErrorMin       float64      `json:"error_min" doc:"Smallest finite match error in Ohm"`
	ErrorMax       float64      `json:"error_max" doc:"Largest finite match error in Ohm"`
	NoCapacitor    int          `json:"no_capacitor" doc:"Samples that need no capacitor"`
	NonFinite      int          `json:"non_finite" doc:"Samples carrying NaN or infinite values"`
	Points         []SweepPoint `json:"points" doc:"Sweep samples, by inductance or by error when top is set"`
}

// SweepResponse represents the computed sweep
type SweepResponse struct {
	Body SweepResponseBody
}

// PlotRequest represents a request to render the sweep as an image
type PlotRequest struct {
	TargetParams
	Format string `query:"format" default:"png" enum:"png,svg" doc:"Image format"`
	Width  int    `query:"width" minimum:"0" maximum:"4096" doc:"Image width in pixels, 0 uses the server default"`
	Height int    `query:"height" minimum:"0" maximum:"4096" doc:"Image height in pixels, 0 uses the server default"`
}

// PlotResponse carries the rendered image
type PlotResponse struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

// ExportRequest represents a request to download the sweep as a file
type ExportRequest struct {
	TargetParams
	Format string `query:"format" default:"xlsx" enum:"xlsx,tsv" doc:"File format"`
}

// ExportResponse carries the exported file
type ExportResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

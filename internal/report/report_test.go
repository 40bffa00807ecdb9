package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinisys/labreports/internal/extract"
)

func TestDeriveUniqueID(t *testing.T) {
	tests := []struct {
		name     string
		draft    extract.Draft
		fileName string
		want     string
		wantErr  bool
	}{
		{
			name:     "embedded id wins over file name",
			draft:    extract.Draft{"uniqueId": "ORD-2024-0117"},
			fileName: "scan_001.pdf",
			want:     "ORD-2024-0117",
		},
		{
			name:     "file name minus extension",
			draft:    extract.Draft{},
			fileName: "cbc_santos_maria.pdf",
			want:     "cbc_santos_maria",
		},
		{
			name:     "uppercase extension",
			draft:    extract.Draft{},
			fileName: "REPORT.PDF",
			want:     "REPORT",
		},
		{
			name:     "no extension kept as is",
			draft:    extract.Draft{},
			fileName: "report-42",
			want:     "report-42",
		},
		{
			name:     "nothing to derive from",
			draft:    extract.Draft{"uniqueId": ""},
			fileName: ".pdf",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveUniqueID(tt.draft, tt.fileName)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrEmptyUniqueID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveUniqueIDIsDeterministic(t *testing.T) {
	d := extract.Draft{"uniqueId": "A-1"}
	first, err := DeriveUniqueID(d, "x.pdf")
	require.NoError(t, err)
	second, err := DeriveUniqueID(d, "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLipidRiskBand(t *testing.T) {
	tests := []struct {
		result string
		want   string
	}{
		{"220", RiskHigh},
		{"200.5", RiskHigh},
		{"200", RiskNormal},
		{"140", RiskNormal},
		{" 185.2 ", RiskNormal},
		{"", RiskNA},
		{"pending", RiskNA},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			assert.Equal(t, tt.want, LipidRiskBand(tt.result))
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{in: "cbc", want: TypeCBC},
		{in: "xray", want: TypeXRay},
		{in: "x-ray", want: TypeXRay},
		{in: "ecg", want: TypeECG},
		{in: "urinalysis", want: TypeUrinalysis},
		{in: "lipid", want: TypeLipid},
		{in: "lipidprofile", want: TypeLipid},
		{in: "chem", want: TypeChem},
		{in: "chemistry", want: TypeChem},
		{in: "medical", want: TypeMedExam},
		{in: "medexam", want: TypeMedExam},
		{in: "mri", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptorsComplete(t *testing.T) {
	for _, typ := range Types() {
		desc, ok := DescriptorFor(typ)
		require.True(t, ok, "missing descriptor for %s", typ)
		assert.NotEmpty(t, desc.Collection)
		assert.NotEmpty(t, desc.UniqueIDField)
		assert.NotEmpty(t, desc.ActivityKey)
		assert.NotEmpty(t, desc.Schema)
		assert.NotNil(t, desc.Build)
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Type
		ok   bool
	}{
		{
			name: "cbc",
			text: "COMPLETE BLOOD COUNT\nHematocrit 40.2\nPlatelet Count 250",
			want: TypeCBC,
			ok:   true,
		},
		{
			name: "lipid",
			text: "LIPID PROFILE\nTotal Cholesterol : 185\nTriglycerides : 120\nHDL : 55",
			want: TypeLipid,
			ok:   true,
		},
		{
			name: "urinalysis",
			text: "URINALYSIS\nSpecific Gravity : 1.015\nUrobilinogen : Normal",
			want: TypeUrinalysis,
			ok:   true,
		},
		{
			name: "nothing recognizable",
			text: "grocery list: eggs, milk",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectType(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBuildCBC(t *testing.T) {
	draft := extract.Draft{
		"patientName": "Maria Santos",
		"mrn":         "MRN-123",
		"gender":      "Female",
		"age":         34,
		"hemoglobin":  extract.LabValue{Result: "13.5", Unit: "g/dL", ReferenceRange: "12.0 - 16.0"},
	}

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	rec, err := buildCBC(draft, "cbc_scan.pdf", now)
	require.NoError(t, err)

	cbc, ok := rec.(*CBCRecord)
	require.True(t, ok)
	assert.Equal(t, "cbc_scan", cbc.UniqueID)
	assert.Equal(t, "Maria Santos", cbc.PatientName)
	assert.Equal(t, 34, cbc.Age)
	assert.Equal(t, "13.5", cbc.Hemoglobin.Result)
	assert.Equal(t, "cbc_scan.pdf", cbc.FileName)
	assert.Equal(t, "2025-03-14T09:30:00Z", cbc.UploadDate)

	assert.Equal(t, "Maria Santos", rec.Patient())
	assert.Equal(t, "cbc_scan", rec.UID())
	rec.AttachPDF("/view-pdf/abc")
	assert.Equal(t, "/view-pdf/abc", cbc.PDFURL)
}

func TestBuildChemRowsAndFlatFields(t *testing.T) {
	draft := extract.Draft{
		"name":       "Jose Ramos",
		"fbs":        extract.LabValue{Result: "5.2", Unit: "mmol/L", ReferenceRange: "3.9 - 6.1"},
		"creatinine": extract.LabValue{Result: "88", Unit: "umol/L", ReferenceRange: "62 - 106"},
		"sgpt":       extract.LabValue{},
	}

	rec, err := buildChem(draft, "chem_ramos.pdf", time.Now())
	require.NoError(t, err)
	chem := rec.(*ChemRecord)

	// Only tests with results become rows.
	require.Len(t, chem.TestResults, 2)
	assert.Equal(t, "5.2", chem.FBS)
	assert.Equal(t, "88", chem.Creatinine)
	assert.Empty(t, chem.SGPT)
}

func TestBuildLipidAllPanelKeysPresent(t *testing.T) {
	rec, err := buildLipid(extract.Draft{"patientName": "Ana Cruz"}, "lipid.pdf", time.Now())
	require.NoError(t, err)
	lipid := rec.(*LipidRecord)

	for _, key := range lipidPanelTests {
		_, ok := lipid.TestResults[key]
		assert.True(t, ok, "missing panel key %s", key)
	}
	assert.Equal(t, RiskNA, lipid.RiskBand)
}

func TestBuildLipidClassifiesHighCholesterol(t *testing.T) {
	draft := extract.Draft{
		"patientName":       "Jose Reyes",
		"total_cholesterol": extract.LabValue{Result: "230"},
	}
	rec, err := buildLipid(draft, "lipid_reyes.pdf", time.Now())
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, rec.(*LipidRecord).RiskBand)
}

func TestBuildFailsWithoutUniqueID(t *testing.T) {
	_, err := buildXRay(extract.Draft{"patientName": "X"}, ".pdf", time.Now())
	assert.ErrorIs(t, err, ErrEmptyUniqueID)
}

func TestSchemaExtractionEndToEnd(t *testing.T) {
	text := `Acme Diagnostics Laboratory
Name : Maria Santos
MRN : 44812
Gender / Age : Female / 34

LIPID PROFILE
Total Cholesterol    185   mg/dL   0 - 200
Triglycerides        120   mg/dL   0 - 150
HDL                  55    mg/dL   40 - 60
`
	desc, ok := DescriptorFor(TypeLipid)
	require.True(t, ok)

	draft, err := extract.Extract(text, desc.Schema)
	require.NoError(t, err)

	rec, err := desc.Build(draft, "lipid_santos.pdf", time.Now())
	require.NoError(t, err)

	lipid := rec.(*LipidRecord)
	assert.Equal(t, "Maria Santos", lipid.PatientName)
	assert.Equal(t, "185", lipid.TestResults["total_cholesterol"].Result)
	assert.Equal(t, RiskNormal, lipid.RiskBand)
}

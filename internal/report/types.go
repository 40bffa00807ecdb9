package report

import "github.com/clinisys/labreports/internal/extract"

// LabValue is re-exported so record consumers don't need to import the
// extraction package for the storage shape.
type LabValue = extract.LabValue

// Record is the part of a normalized record the ingestion pipeline needs:
// the patient display name for the progress narrative and the deduplication
// key for the duplicate guard.
type Record interface {
	Patient() string
	UID() string
	// AttachPDF threads the stored PDF's URL onto the record; the
	// pipeline only carries the value through, never interprets it.
	AttachPDF(url string)
}

// CBCRecord is a complete blood count report. Analytes keep the exact field
// names the record store has always used.
type CBCRecord struct {
	UniqueID           string   `json:"uniqueId" firestore:"uniqueId"`
	PatientName        string   `json:"patientName" firestore:"patientName"`
	MRN                string   `json:"mrn" firestore:"mrn"`
	Gender             string   `json:"gender" firestore:"gender"`
	Age                int      `json:"age" firestore:"age"`
	DOB                string   `json:"dob" firestore:"dob"`
	CollectionDateTime string   `json:"collectionDateTime" firestore:"collectionDateTime"`
	ResultValidated    string   `json:"resultValidated" firestore:"resultValidated"`
	RBC                LabValue `json:"rbc" firestore:"rbc"`
	Hemoglobin         LabValue `json:"hemoglobin" firestore:"hemoglobin"`
	Hematocrit         LabValue `json:"hematocrit" firestore:"hematocrit"`
	MCV                LabValue `json:"mcv" firestore:"mcv"`
	MCH                LabValue `json:"mch" firestore:"mch"`
	MCHC               LabValue `json:"mchc" firestore:"mchc"`
	RDW                LabValue `json:"rdw" firestore:"rdw"`
	Platelets          LabValue `json:"platelets" firestore:"platelets"`
	MPV                LabValue `json:"mpv" firestore:"mpv"`
	WBC                LabValue `json:"wbc" firestore:"wbc"`
	NeutrophilsPercent LabValue `json:"neutrophils_percent" firestore:"neutrophils_percent"`
	LymphocytesPercent LabValue `json:"lymphocytes_percent" firestore:"lymphocytes_percent"`
	MonocytesPercent   LabValue `json:"monocytes_percent" firestore:"monocytes_percent"`
	EosinophilsPercent LabValue `json:"eosinophils_percent" firestore:"eosinophils_percent"`
	BasophilsPercent   LabValue `json:"basophils_percent" firestore:"basophils_percent"`
	TotalPercent       LabValue `json:"total_percent" firestore:"total_percent"`
	NeutrophilsAbs     LabValue `json:"neutrophils_abs" firestore:"neutrophils_abs"`
	LymphocytesAbs     LabValue `json:"lymphocytes_abs" firestore:"lymphocytes_abs"`
	MonocytesAbs       LabValue `json:"monocytes_abs" firestore:"monocytes_abs"`
	EosinophilsAbs     LabValue `json:"eosinophils_abs" firestore:"eosinophils_abs"`
	BasophilsAbs       LabValue `json:"basophils_abs" firestore:"basophils_abs"`
	FileName           string   `json:"fileName" firestore:"fileName"`
	UploadDate         string   `json:"uploadDate" firestore:"uploadDate"`
	PDFURL             string   `json:"pdfUrl" firestore:"pdfUrl"`
}

func (r *CBCRecord) Patient() string { return r.PatientName }
func (r *CBCRecord) UID() string { return r.UniqueID }
func (r *CBCRecord) AttachPDF(u string) { r.PDFURL = u }

// XRayRecord is a chest X-Ray report: free-text interpretation and
// impression sections rather than analyte rows.
type XRayRecord struct {
	UniqueID       string `json:"uniqueId" firestore:"uniqueId"`
	PatientName    string `json:"patientName" firestore:"patientName"`
	DateOfBirth    string `json:"dateOfBirth" firestore:"dateOfBirth"`
	Age            int    `json:"age" firestore:"age"`
	Gender         string `json:"gender" firestore:"gender"`
	Company        string `json:"company" firestore:"company"`
	Examination    string `json:"examination" firestore:"examination"`
	Interpretation string `json:"interpretation" firestore:"interpretation"`
	Impression     string `json:"impression" firestore:"impression"`
	ReportDate     string `json:"reportDate" firestore:"reportDate"`
	FileName       string `json:"fileName" firestore:"fileName"`
	UploadDate     string `json:"uploadDate" firestore:"uploadDate"`
	PDFURL         string `json:"pdfUrl" firestore:"pdfUrl"`
}

func (r *XRayRecord) Patient() string { return r.PatientName }
func (r *XRayRecord) UID() string { return r.UniqueID }
func (r *XRayRecord) AttachPDF(u string) { r.PDFURL = u }

// ECGRecord carries waveform measurements as free strings; the machine
// prints them already formatted.
type ECGRecord struct {
	UniqueID            string `json:"uniqueId" firestore:"uniqueId"`
	PIDNo               string `json:"pid_no" firestore:"pid_no"`
	Date                string `json:"date" firestore:"date"`
	PatientName         string `json:"patient_name" firestore:"patient_name"`
	ReferringPhysician  string `json:"referring_physician" firestore:"referring_physician"`
	HR                  string `json:"hr" firestore:"hr"`
	BP                  string `json:"bp" firestore:"bp"`
	Age                 string `json:"age" firestore:"age"`
	Sex                 string `json:"sex" firestore:"sex"`
	BirthDate           string `json:"birth_date" firestore:"birth_date"`
	QRS                 string `json:"qrs" firestore:"qrs"`
	QTQTc               string `json:"qt_qtc" firestore:"qt_qtc"`
	PR                  string `json:"pr" firestore:"pr"`
	P                   string `json:"p" firestore:"p"`
	RRPP                string `json:"rr_pp" firestore:"rr_pp"`
	PQRST               string `json:"pqrst" firestore:"pqrst"`
	Interpretation      string `json:"interpretation" firestore:"interpretation"`
	FileName            string `json:"fileName" firestore:"fileName"`
	UploadDate          string `json:"uploadDate" firestore:"uploadDate"`
	PDFURL              string `json:"pdfUrl" firestore:"pdfUrl"`
}

func (r *ECGRecord) Patient() string { return r.PatientName }
func (r *ECGRecord) UID() string { return r.UniqueID }
func (r *ECGRecord) AttachPDF(u string) { r.PDFURL = u }

// UrinalysisRecord holds macroscopic, chemical and microscopic findings,
// all as LabValues even where the result is qualitative ("Yellow", "Hazy").
type UrinalysisRecord struct {
	UniqueID           string   `json:"uniqueId" firestore:"uniqueId"`
	PatientName        string   `json:"patientName" firestore:"patientName"`
	MRN                string   `json:"mrn" firestore:"mrn"`
	Gender             string   `json:"gender" firestore:"gender"`
	Age                string   `json:"age" firestore:"age"`
	DOB                string   `json:"dob" firestore:"dob"`
	CollectionDateTime string   `json:"collectionDateTime" firestore:"collectionDateTime"`
	ResultValidated    string   `json:"resultValidated" firestore:"resultValidated"`
	OrderNumber        string   `json:"orderNumber" firestore:"orderNumber"`
	Location           string   `json:"location" firestore:"location"`
	Color              LabValue `json:"color" firestore:"color"`
	Clarity            LabValue `json:"clarity" firestore:"clarity"`
	Glucose            LabValue `json:"glucose" firestore:"glucose"`
	Bilirubin          LabValue `json:"bilirubin" firestore:"bilirubin"`
	Ketones            LabValue `json:"ketones" firestore:"ketones"`
	SpecificGravity    LabValue `json:"specific_gravity" firestore:"specific_gravity"`
	Blood              LabValue `json:"blood" firestore:"blood"`
	PH                 LabValue `json:"ph" firestore:"ph"`
	Protein            LabValue `json:"protein" firestore:"protein"`
	Urobilinogen       LabValue `json:"urobilinogen" firestore:"urobilinogen"`
	Nitrite            LabValue `json:"nitrite" firestore:"nitrite"`
	LeukocyteEsterase  LabValue `json:"leukocyte_esterase" firestore:"leukocyte_esterase"`
	RBC                LabValue `json:"rbc" firestore:"rbc"`
	WBC                LabValue `json:"wbc" firestore:"wbc"`
	EpithelialCells    LabValue `json:"epithelial_cells" firestore:"epithelial_cells"`
	Bacteria           LabValue `json:"bacteria" firestore:"bacteria"`
	HyalineCast        LabValue `json:"hyaline_cast" firestore:"hyaline_cast"`
	Remarks            LabValue `json:"remarks" firestore:"remarks"`
	FileName           string   `json:"fileName" firestore:"fileName"`
	UploadDate         string   `json:"uploadDate" firestore:"uploadDate"`
	PDFURL             string   `json:"pdfUrl" firestore:"pdfUrl"`
}

func (r *UrinalysisRecord) Patient() string { return r.PatientName }
func (r *UrinalysisRecord) UID() string { return r.UniqueID }
func (r *UrinalysisRecord) AttachPDF(u string) { r.PDFURL = u }

// LipidRecord keeps its analytes in a keyed map; the set of tests on a lipid
// panel varies between laboratories.
type LipidRecord struct {
	UniqueID           string              `json:"uniqueId" firestore:"uniqueId"`
	PatientName        string              `json:"patientName" firestore:"patientName"`
	MRN                string              `json:"mrn" firestore:"mrn"`
	Gender             string              `json:"gender" firestore:"gender"`
	Age                string              `json:"age" firestore:"age"`
	CareProvider       string              `json:"careprovider" firestore:"careprovider"`
	Location           string              `json:"location" firestore:"location"`
	DateOfBirth        string              `json:"dateOfBirth" firestore:"dateOfBirth"`
	CollectionDateTime string              `json:"collectionDateTime" firestore:"collectionDateTime"`
	ResultValidated    string              `json:"resultValidated" firestore:"resultValidated"`
	TestResults        map[string]LabValue `json:"testResults" firestore:"testResults"`
	RiskBand           string              `json:"riskBand" firestore:"riskBand"`
	FileName           string              `json:"fileName" firestore:"fileName"`
	UploadDate         string              `json:"uploadDate" firestore:"uploadDate"`
	PDFURL             string              `json:"pdfUrl" firestore:"pdfUrl"`
}

func (r *LipidRecord) Patient() string { return r.PatientName }
func (r *LipidRecord) UID() string { return r.UniqueID }
func (r *LipidRecord) AttachPDF(u string) { r.PDFURL = u }

// ChemTestResult is one row of a chemistry panel.
type ChemTestResult struct {
	TestName       string `json:"test_name" firestore:"test_name"`
	Result         string `json:"result" firestore:"result"`
	Unit           string `json:"unit" firestore:"unit"`
	ReferenceRange string `json:"reference_range" firestore:"reference_range"`
}

// ChemRecord is a blood chemistry report: an ordered list of test rows plus
// flat convenience fields for the tests the dashboards chart.
type ChemRecord struct {
	UniqueID           string           `json:"uniqueId" firestore:"uniqueId"`
	Name               string           `json:"name" firestore:"name"`
	MRN                string           `json:"mrn" firestore:"mrn"`
	Gender             string           `json:"gender" firestore:"gender"`
	Age                string           `json:"age" firestore:"age"`
	CareProvider       string           `json:"care_provider" firestore:"care_provider"`
	Location           string           `json:"location" firestore:"location"`
	DOB                string           `json:"dob" firestore:"dob"`
	CollectionDateTime string           `json:"collection_datetime" firestore:"collection_datetime"`
	ResultValidated    string           `json:"result_validated" firestore:"result_validated"`
	TestResults        []ChemTestResult `json:"test_results" firestore:"test_results"`
	FBS                string           `json:"fbs,omitempty" firestore:"fbs,omitempty"`
	BUA                string           `json:"bua,omitempty" firestore:"bua,omitempty"`
	Creatinine         string           `json:"creatinine,omitempty" firestore:"creatinine,omitempty"`
	SGPT               string           `json:"sgpt,omitempty" firestore:"sgpt,omitempty"`
	Cholesterol        string           `json:"cholesterol,omitempty" firestore:"cholesterol,omitempty"`
	HDL                string           `json:"hdl,omitempty" firestore:"hdl,omitempty"`
	LDL                string           `json:"ldl,omitempty" firestore:"ldl,omitempty"`
	Triglycerides      string           `json:"triglycerides,omitempty" firestore:"triglycerides,omitempty"`
	FileName           string           `json:"fileName" firestore:"fileName"`
	UploadDate         string           `json:"uploadDate" firestore:"uploadDate"`
	PDFURL             string           `json:"pdfUrl" firestore:"pdfUrl"`
}

func (r *ChemRecord) Patient() string { return r.Name }
func (r *ChemRecord) UID() string { return r.UniqueID }
func (r *ChemRecord) AttachPDF(u string) { r.PDFURL = u }

// MedExamRecord is the annual physical examination summary: vitals, history,
// per-system lab findings and the fitness classification.
type MedExamRecord struct {
	UniqueID string `json:"uniqueId" firestore:"uniqueId"`

	PatientName       string `json:"patient_name" firestore:"patient_name"`
	PID               string `json:"pid" firestore:"pid"`
	DateOfBirth       string `json:"date_of_birth" firestore:"date_of_birth"`
	Age               int    `json:"age" firestore:"age"`
	Sex               string `json:"sex" firestore:"sex"`
	CivilStatus       string `json:"civil_status" firestore:"civil_status"`
	Company           string `json:"company" firestore:"company"`
	Occupation        string `json:"occupation" firestore:"occupation"`
	DateOfExamination string `json:"date_of_examination" firestore:"date_of_examination"`

	PresentIllness           string `json:"present_illness" firestore:"present_illness"`
	FoodAllergy              string `json:"food_allergy" firestore:"food_allergy"`
	MedicationAllergy        string `json:"medication_allergy" firestore:"medication_allergy"`
	PastConsultation         string `json:"past_consultation" firestore:"past_consultation"`
	MaintenanceMedications   string `json:"maintenance_medications" firestore:"maintenance_medications"`
	PreviousHospitalizations string `json:"previous_hospitalizations" firestore:"previous_hospitalizations"`
	MenstrualHistoryLMP      string `json:"menstrual_history_lmp" firestore:"menstrual_history_lmp"`
	ObstetricalHistory       string `json:"obstetrical_history" firestore:"obstetrical_history"`

	BloodPressure   string `json:"blood_pressure" firestore:"blood_pressure"`
	Pulse           string `json:"pulse" firestore:"pulse"`
	SpO2            string `json:"spo2" firestore:"spo2"`
	RespiratoryRate string `json:"respiratory_rate" firestore:"respiratory_rate"`
	Temperature     string `json:"temperature" firestore:"temperature"`

	Height string `json:"height" firestore:"height"`
	Weight string `json:"weight" firestore:"weight"`
	BMI    string `json:"bmi" firestore:"bmi"`
	IBW    string `json:"ibw" firestore:"ibw"`

	VisionAdequacy string `json:"vision_adequacy" firestore:"vision_adequacy"`
	VisionOD       string `json:"vision_od" firestore:"vision_od"`
	VisionOS       string `json:"vision_os" firestore:"vision_os"`

	CBCResult            string `json:"cbc_result" firestore:"cbc_result"`
	UrinalysisResult     string `json:"urinalysis_result" firestore:"urinalysis_result"`
	BloodChemistryResult string `json:"blood_chemistry_result" firestore:"blood_chemistry_result"`
	ChestXRayResult      string `json:"chest_xray_result" firestore:"chest_xray_result"`
	ECGResult            string `json:"ecg_result" firestore:"ecg_result"`

	FitnessStatus  string `json:"fitness_status" firestore:"fitness_status"`
	MedicalClass   string `json:"medical_class" firestore:"medical_class"`
	NeedsTreatment string `json:"needs_treatment" firestore:"needs_treatment"`
	Remarks        string `json:"remarks" firestore:"remarks"`

	ExaminingPhysician  string `json:"examining_physician" firestore:"examining_physician"`
	EvaluatingPersonnel string `json:"evaluating_personnel" firestore:"evaluating_personnel"`
	PhysicianPRC        string `json:"physician_prc" firestore:"physician_prc"`

	DateOfInitialPEME string `json:"date_of_initial_peme" firestore:"date_of_initial_peme"`
	DateOfFitness     string `json:"date_of_fitness" firestore:"date_of_fitness"`
	ValidUntil        string `json:"valid_until" firestore:"valid_until"`

	HeadOrNeckInjury  string `json:"head_or_neck_injury" firestore:"head_or_neck_injury"`
	FrequentDizziness string `json:"frequent_dizziness" firestore:"frequent_dizziness"`
	FaintingSpells    string `json:"fainting_spells" firestore:"fainting_spells"`
	ChronicCough      string `json:"chronic_cough" firestore:"chronic_cough"`
	HeartDisease      string `json:"heart_disease" firestore:"heart_disease"`
	Hypertension      string `json:"hypertension" firestore:"hypertension"`
	Diabetes          string `json:"diabetes" firestore:"diabetes"`
	Asthma            string `json:"asthma" firestore:"asthma"`
	Epilepsy          string `json:"epilepsy" firestore:"epilepsy"`
	MentalDisorder    string `json:"mental_disorder" firestore:"mental_disorder"`
	Tuberculosis      string `json:"tuberculosis" firestore:"tuberculosis"`
	Cancer            string `json:"cancer" firestore:"cancer"`
	KidneyDisease     string `json:"kidney_disease" firestore:"kidney_disease"`
	Others            string `json:"others" firestore:"others"`

	FileName   string `json:"fileName" firestore:"fileName"`
	UploadDate string `json:"uploadDate" firestore:"uploadDate"`
	PDFURL     string `json:"pdfUrl" firestore:"pdfUrl"`
}

func (r *MedExamRecord) Patient() string { return r.PatientName }
func (r *MedExamRecord) UID() string { return r.UniqueID }
func (r *MedExamRecord) AttachPDF(u string) { r.PDFURL = u }

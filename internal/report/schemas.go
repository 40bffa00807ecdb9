package report

import "github.com/clinisys/labreports/internal/extract"

// Label patterns shared by the laboratory report layouts. Patient identity
// on lab panels is printed as a combined "Gender / Age : F / 42" header.
const (
	genderFromHeader = `(?i)Gender\s*/\s*Age\s*:\s*(\w+)\s*/\s*\d+`
	ageFromHeader    = `(?i)Gender\s*/\s*Age\s*:\s*\w+\s*/\s*(\d+)`
	orderNumber      = `(?i)Order\s*(?:No|Number)\s*[.:]?\s*:?\s*([A-Za-z0-9][\w-]*)`
	totalWBCPercent  = `(?i)Total\s*:\s*(\d+)`
)

// wbcAbsoluteBlock heads the section of a CBC report that repeats the
// differential labels with absolute counts.
const wbcAbsoluteBlock = "WBC Absolute Count"

var cbcSchema = []extract.FieldSpec{
	{Name: "patientName", Label: "Name", Kind: extract.Line, Identity: true},
	{Name: "mrn", Label: "MRN", Kind: extract.Line, Identity: true},
	{Name: "gender", Kind: extract.Pattern, Pattern: genderFromHeader},
	{Name: "age", Kind: extract.PatternNumber, Pattern: ageFromHeader},
	{Name: "dob", Label: "DOB", Kind: extract.Line},
	{Name: "collectionDateTime", Label: "Collection Date/Time", Kind: extract.Line},
	{Name: "resultValidated", Label: "Result Validated", Kind: extract.Line},
	{Name: "uniqueId", Kind: extract.Pattern, Pattern: orderNumber},

	{Name: "rbc", Label: "RBC Count", Kind: extract.Analyte},
	{Name: "hematocrit", Label: "Hematocrit", Kind: extract.Analyte},
	{Name: "hemoglobin", Label: "Hemoglobin", Kind: extract.Analyte},
	{Name: "mcv", Label: "MCV", Kind: extract.Analyte},
	{Name: "mch", Label: "MCH", Kind: extract.Analyte},
	{Name: "mchc", Label: "MCHC", Kind: extract.Analyte},
	{Name: "rdw", Label: "RDW", Kind: extract.Analyte},
	{Name: "platelets", Label: "Platelet Count", Kind: extract.Analyte},
	{Name: "mpv", Label: "MPV", Kind: extract.Analyte},
	{Name: "wbc", Label: "WBC Count", Kind: extract.Analyte},

	{Name: "neutrophils_percent", Label: "Neutrophil", Kind: extract.Analyte},
	{Name: "lymphocytes_percent", Label: "Lymphocytes", Kind: extract.Analyte},
	{Name: "monocytes_percent", Label: "Monocytes", Kind: extract.Analyte},
	{Name: "eosinophils_percent", Label: "Eosinophil", Kind: extract.Analyte},
	{Name: "basophils_percent", Label: "Basophil", Kind: extract.Analyte},
	{Name: "total_percent", Kind: extract.Pattern, Pattern: totalWBCPercent},

	{Name: "neutrophils_abs", Label: "Neutrophil", Kind: extract.Analyte, Block: wbcAbsoluteBlock},
	{Name: "lymphocytes_abs", Label: "Lymphocyte", Kind: extract.Analyte, Block: wbcAbsoluteBlock},
	{Name: "monocytes_abs", Label: "Monocyte", Kind: extract.Analyte, Block: wbcAbsoluteBlock},
	{Name: "eosinophils_abs", Label: "Eosinophil", Kind: extract.Analyte, Block: wbcAbsoluteBlock},
	{Name: "basophils_abs", Label: "Basophil", Kind: extract.Analyte, Block: wbcAbsoluteBlock},
}

var xraySchema = []extract.FieldSpec{
	{Name: "patientName", Label: "Patient's Name", Kind: extract.Line, Identity: true},
	{Name: "dateOfBirth", Label: "Date of Birth", Kind: extract.Line},
	{Name: "age", Label: "Age", Kind: extract.Number},
	{Name: "gender", Label: "Gender", Kind: extract.Line},
	{Name: "company", Label: "Company", Kind: extract.Line, Identity: true},
	{Name: "examination", Label: "Examination", Kind: extract.Line},
	{Name: "reportDate", Label: "Date", Kind: extract.Line},
	{Name: "interpretation", Label: "Interpretation", Kind: extract.Span, Until: "Impression"},
	{Name: "impression", Label: "Impression", Kind: extract.Line},
}

var ecgSchema = []extract.FieldSpec{
	{Name: "pid_no", Label: "PID No", Kind: extract.Line, Identity: true},
	{Name: "patient_name", Label: "Patient Name", Kind: extract.Line, Identity: true},
	{Name: "date", Label: "Date", Kind: extract.Line},
	{Name: "referring_physician", Label: "Referring Physician", Kind: extract.Line},
	{Name: "hr", Label: "HR", Kind: extract.Line},
	{Name: "bp", Label: "BP", Kind: extract.Line},
	{Name: "age", Label: "Age", Kind: extract.Line},
	{Name: "sex", Label: "Sex", Kind: extract.Line},
	{Name: "birth_date", Label: "Birth Date", Kind: extract.Line},
	{Name: "qrs", Label: "QRS", Kind: extract.Line},
	{Name: "qt_qtc", Label: "QT/QTc", Kind: extract.Line},
	{Name: "pr", Label: "PR", Kind: extract.Line},
	{Name: "p", Label: "P", Kind: extract.Line},
	{Name: "rr_pp", Label: "RR/PP", Kind: extract.Line},
	{Name: "pqrst", Label: "PQRST", Kind: extract.Line},
	{Name: "interpretation", Label: "Interpretation", Kind: extract.Span},
	{Name: "uniqueId", Kind: extract.Pattern, Pattern: orderNumber},
}

var urinalysisSchema = []extract.FieldSpec{
	{Name: "patientName", Label: "Name", Kind: extract.Line, Identity: true},
	{Name: "mrn", Label: "MRN", Kind: extract.Line, Identity: true},
	{Name: "gender", Kind: extract.Pattern, Pattern: genderFromHeader},
	{Name: "age", Kind: extract.Pattern, Pattern: ageFromHeader},
	{Name: "dob", Label: "DOB", Kind: extract.Line},
	{Name: "collectionDateTime", Label: "Collection Date/Time", Kind: extract.Line},
	{Name: "resultValidated", Label: "Result Validated", Kind: extract.Line},
	{Name: "orderNumber", Label: "Order Number", Kind: extract.Line},
	{Name: "location", Label: "Location", Kind: extract.Line},
	{Name: "uniqueId", Kind: extract.Pattern, Pattern: orderNumber},

	// Urinalysis findings are frequently qualitative ("Yellow", "Hazy",
	// "Negative"), so rows are captured as label lines and decomposed by
	// the normalizer instead of the numeric analyte matcher.
	{Name: "color", Label: "Color", Kind: extract.Line},
	{Name: "clarity", Label: "Clarity", Kind: extract.Line},
	{Name: "glucose", Label: "Glucose", Kind: extract.Line},
	{Name: "bilirubin", Label: "Bilirubin", Kind: extract.Line},
	{Name: "ketones", Label: "Ketones", Kind: extract.Line},
	{Name: "specific_gravity", Label: "Specific Gravity", Kind: extract.Line},
	{Name: "blood", Label: "Blood", Kind: extract.Line},
	{Name: "ph", Label: "pH", Kind: extract.Line},
	{Name: "protein", Label: "Protein", Kind: extract.Line},
	{Name: "urobilinogen", Label: "Urobilinogen", Kind: extract.Line},
	{Name: "nitrite", Label: "Nitrite", Kind: extract.Line},
	{Name: "leukocyte_esterase", Label: "Leukocyte Esterase", Kind: extract.Line},
	{Name: "rbc", Label: "RBC", Kind: extract.Line},
	{Name: "wbc", Label: "WBC", Kind: extract.Line},
	{Name: "epithelial_cells", Label: "Epithelial Cells", Kind: extract.Line},
	{Name: "bacteria", Label: "Bacteria", Kind: extract.Line},
	{Name: "hyaline_cast", Label: "Hyaline Cast", Kind: extract.Line},
	{Name: "remarks", Label: "Remarks", Kind: extract.Line},
}

var lipidSchema = []extract.FieldSpec{
	{Name: "patientName", Label: "Name", Kind: extract.Line, Identity: true},
	{Name: "mrn", Label: "MRN", Kind: extract.Line, Identity: true},
	{Name: "gender", Kind: extract.Pattern, Pattern: genderFromHeader},
	{Name: "age", Kind: extract.Pattern, Pattern: ageFromHeader},
	{Name: "careprovider", Label: "Care Provider", Kind: extract.Line},
	{Name: "location", Label: "Location", Kind: extract.Line},
	{Name: "dateOfBirth", Label: "DOB", Kind: extract.Line},
	{Name: "collectionDateTime", Label: "Collection Date/Time", Kind: extract.Line},
	{Name: "resultValidated", Label: "Result Validated", Kind: extract.Line},
	{Name: "uniqueId", Kind: extract.Pattern, Pattern: orderNumber},

	{Name: "total_cholesterol", Label: "Total Cholesterol", Kind: extract.Analyte},
	{Name: "triglycerides", Label: "Triglycerides", Kind: extract.Analyte},
	{Name: "hdl", Label: "HDL", Kind: extract.Analyte},
	{Name: "ldl", Label: "LDL", Kind: extract.Analyte},
	{Name: "vldl", Label: "VLDL", Kind: extract.Analyte},
}

// lipidPanelTests orders the keyed map of a lipid record.
var lipidPanelTests = []string{"total_cholesterol", "triglycerides", "hdl", "ldl", "vldl"}

var chemSchema = []extract.FieldSpec{
	{Name: "name", Label: "Name", Kind: extract.Line, Identity: true},
	{Name: "mrn", Label: "MRN", Kind: extract.Line, Identity: true},
	{Name: "gender", Kind: extract.Pattern, Pattern: genderFromHeader},
	{Name: "age", Kind: extract.Pattern, Pattern: ageFromHeader},
	{Name: "care_provider", Label: "Care Provider", Kind: extract.Line},
	{Name: "location", Label: "Location", Kind: extract.Line},
	{Name: "dob", Label: "DOB", Kind: extract.Line},
	{Name: "collection_datetime", Label: "Collection Date/Time", Kind: extract.Line},
	{Name: "result_validated", Label: "Result Validated", Kind: extract.Line},
	{Name: "uniqueId", Kind: extract.Pattern, Pattern: orderNumber},

	{Name: "fbs", Label: "FBS", Kind: extract.Analyte},
	{Name: "bua", Label: "BUA", Kind: extract.Analyte},
	{Name: "creatinine", Label: "Creatinine", Kind: extract.Analyte},
	{Name: "sgpt", Label: "SGPT", Kind: extract.Analyte},
	{Name: "cholesterol", Label: "Cholesterol", Kind: extract.Analyte},
	{Name: "hdl", Label: "HDL", Kind: extract.Analyte},
	{Name: "ldl", Label: "LDL", Kind: extract.Analyte},
	{Name: "triglycerides", Label: "Triglycerides", Kind: extract.Analyte},
}

// chemPanelTests maps draft keys to the row names shown on chemistry panels.
var chemPanelTests = []struct {
	Key  string
	Name string
}{
	{"fbs", "FBS"},
	{"bua", "BUA"},
	{"creatinine", "Creatinine"},
	{"sgpt", "SGPT"},
	{"cholesterol", "Cholesterol"},
	{"hdl", "HDL"},
	{"ldl", "LDL"},
	{"triglycerides", "Triglycerides"},
}

var medExamSchema = []extract.FieldSpec{
	{Name: "patient_name", Label: "Name", Kind: extract.Line, Identity: true},
	{Name: "pid", Label: "PID", Kind: extract.Line, Identity: true},
	{Name: "date_of_birth", Label: "Date of Birth", Kind: extract.Line},
	{Name: "age", Label: "Age", Kind: extract.Number},
	{Name: "sex", Label: "Sex", Kind: extract.Line},
	{Name: "civil_status", Label: "Civil Status", Kind: extract.Line},
	{Name: "company", Label: "Company", Kind: extract.Line},
	{Name: "occupation", Label: "Occupation", Kind: extract.Line},
	{Name: "date_of_examination", Label: "Date of Examination", Kind: extract.Line},

	{Name: "present_illness", Label: "Present Illness", Kind: extract.Line},
	{Name: "food_allergy", Label: "Food Allergy", Kind: extract.Line},
	{Name: "medication_allergy", Label: "Medication Allergy", Kind: extract.Line},
	{Name: "past_consultation", Label: "Past Consultation", Kind: extract.Line},
	{Name: "maintenance_medications", Label: "Maintenance Medications", Kind: extract.Line},
	{Name: "previous_hospitalizations", Label: "Previous Hospitalizations", Kind: extract.Line},
	{Name: "menstrual_history_lmp", Label: "LMP", Kind: extract.Line},
	{Name: "obstetrical_history", Label: "Obstetrical History", Kind: extract.Line},

	{Name: "blood_pressure", Label: "Blood Pressure", Kind: extract.Line},
	{Name: "pulse", Label: "Pulse", Kind: extract.Line},
	{Name: "spo2", Label: "SpO2", Kind: extract.Line},
	{Name: "respiratory_rate", Label: "Respiratory Rate", Kind: extract.Line},
	{Name: "temperature", Label: "Temperature", Kind: extract.Line},

	{Name: "height", Label: "Height", Kind: extract.Line},
	{Name: "weight", Label: "Weight", Kind: extract.Line},
	{Name: "bmi", Label: "BMI", Kind: extract.Line},
	{Name: "ibw", Label: "IBW", Kind: extract.Line},

	{Name: "vision_adequacy", Label: "Vision Adequacy", Kind: extract.Line},
	{Name: "vision_od", Label: "OD", Kind: extract.Line},
	{Name: "vision_os", Label: "OS", Kind: extract.Line},

	{Name: "cbc_result", Label: "CBC", Kind: extract.Line},
	{Name: "urinalysis_result", Label: "Urinalysis", Kind: extract.Line},
	{Name: "blood_chemistry_result", Label: "Blood Chemistry", Kind: extract.Line},
	{Name: "chest_xray_result", Label: "Chest X-Ray", Kind: extract.Line},
	{Name: "ecg_result", Label: "ECG", Kind: extract.Line},

	{Name: "fitness_status", Label: "Fitness Status", Kind: extract.Line},
	{Name: "medical_class", Label: "Medical Class", Kind: extract.Line},
	{Name: "needs_treatment", Label: "Needs Treatment", Kind: extract.Line},
	{Name: "remarks", Label: "Remarks", Kind: extract.Line},

	{Name: "examining_physician", Label: "Examining Physician", Kind: extract.Line},
	{Name: "evaluating_personnel", Label: "Evaluating Personnel", Kind: extract.Line},
	{Name: "physician_prc", Label: "PRC No", Kind: extract.Line},

	{Name: "date_of_initial_peme", Label: "Date of Initial PEME", Kind: extract.Line},
	{Name: "date_of_fitness", Label: "Date of Fitness", Kind: extract.Line},
	{Name: "valid_until", Label: "Valid Until", Kind: extract.Line},

	{Name: "head_or_neck_injury", Label: "Head or Neck Injury", Kind: extract.Line},
	{Name: "frequent_dizziness", Label: "Frequent Dizziness", Kind: extract.Line},
	{Name: "fainting_spells", Label: "Fainting Spells", Kind: extract.Line},
	{Name: "chronic_cough", Label: "Chronic Cough", Kind: extract.Line},
	{Name: "heart_disease", Label: "Heart Disease", Kind: extract.Line},
	{Name: "hypertension", Label: "Hypertension", Kind: extract.Line},
	{Name: "diabetes", Label: "Diabetes", Kind: extract.Line},
	{Name: "asthma", Label: "Asthma", Kind: extract.Line},
	{Name: "epilepsy", Label: "Epilepsy", Kind: extract.Line},
	{Name: "mental_disorder", Label: "Mental Disorder", Kind: extract.Line},
	{Name: "tuberculosis", Label: "Tuberculosis", Kind: extract.Line},
	{Name: "cancer", Label: "Cancer", Kind: extract.Line},
	{Name: "kidney_disease", Label: "Kidney Disease", Kind: extract.Line},
	{Name: "others", Label: "Others", Kind: extract.Line},

	{Name: "uniqueId", Kind: extract.Pattern, Pattern: orderNumber},
}

package report

import (
	"time"

	"github.com/clinisys/labreports/internal/extract"
)

// The builders shape a draft into its typed record. They share the
// derivation and timestamp conventions: the unique ID comes from
// DeriveUniqueID and the upload date is the UTC ingestion time in RFC 3339.

func buildCBC(d extract.Draft, fileName string, now time.Time) (Record, error) {
	uid, err := DeriveUniqueID(d, fileName)
	if err != nil {
		return nil, err
	}
	return &CBCRecord{
		UniqueID:           uid,
		PatientName:        d.String("patientName"),
		MRN:                d.String("mrn"),
		Gender:             d.String("gender"),
		Age:                d.Int("age"),
		DOB:                d.String("dob"),
		CollectionDateTime: d.String("collectionDateTime"),
		ResultValidated:    d.String("resultValidated"),
		RBC:                d.LabValue("rbc"),
		Hemoglobin:         d.LabValue("hemoglobin"),
		Hematocrit:         d.LabValue("hematocrit"),
		MCV:                d.LabValue("mcv"),
		MCH:                d.LabValue("mch"),
		MCHC:               d.LabValue("mchc"),
		RDW:                d.LabValue("rdw"),
		Platelets:          d.LabValue("platelets"),
		MPV:                d.LabValue("mpv"),
		WBC:                d.LabValue("wbc"),
		NeutrophilsPercent: d.LabValue("neutrophils_percent"),
		LymphocytesPercent: d.LabValue("lymphocytes_percent"),
		MonocytesPercent:   d.LabValue("monocytes_percent"),
		EosinophilsPercent: d.LabValue("eosinophils_percent"),
		BasophilsPercent:   d.LabValue("basophils_percent"),
		TotalPercent:       d.LabValue("total_percent"),
		NeutrophilsAbs:     d.LabValue("neutrophils_abs"),
		LymphocytesAbs:     d.LabValue("lymphocytes_abs"),
		MonocytesAbs:       d.LabValue("monocytes_abs"),
		EosinophilsAbs:     d.LabValue("eosinophils_abs"),
		BasophilsAbs:       d.LabValue("basophils_abs"),
		FileName:           fileName,
		UploadDate:         now.UTC().Format(time.RFC3339),
	}, nil
}

func buildXRay(d extract.Draft, fileName string, now time.Time) (Record, error) {
	uid, err := DeriveUniqueID(d, fileName)
	if err != nil {
		return nil, err
	}
	return &XRayRecord{
		UniqueID:       uid,
		PatientName:    d.String("patientName"),
		DateOfBirth:    d.String("dateOfBirth"),
		Age:            d.Int("age"),
		Gender:         d.String("gender"),
		Company:        d.String("company"),
		Examination:    d.String("examination"),
		Interpretation: d.String("interpretation"),
		Impression:     d.String("impression"),
		ReportDate:     d.String("reportDate"),
		FileName:       fileName,
		UploadDate:     now.UTC().Format(time.RFC3339),
	}, nil
}

func buildECG(d extract.Draft, fileName string, now time.Time) (Record, error) {
	uid, err := DeriveUniqueID(d, fileName)
	if err != nil {
		return nil, err
	}
	return &ECGRecord{
		UniqueID:           uid,
		PIDNo:              d.String("pid_no"),
		Date:               d.String("date"),
		PatientName:        d.String("patient_name"),
		ReferringPhysician: d.String("referring_physician"),
		HR:                 d.String("hr"),
		BP:                 d.String("bp"),
		Age:                d.String("age"),
		Sex:                d.String("sex"),
		BirthDate:          d.String("birth_date"),
		QRS:                d.String("qrs"),
		QTQTc:              d.String("qt_qtc"),
		PR:                 d.String("pr"),
		P:                  d.String("p"),
		RRPP:               d.String("rr_pp"),
		PQRST:              d.String("pqrst"),
		Interpretation:     d.String("interpretation"),
		FileName:           fileName,
		UploadDate:         now.UTC().Format(time.RFC3339),
	}, nil
}

func buildUrinalysis(d extract.Draft, fileName string, now time.Time) (Record, error) {
	uid, err := DeriveUniqueID(d, fileName)
	if err != nil {
		return nil, err
	}
	return &UrinalysisRecord{
		UniqueID:           uid,
		PatientName:        d.String("patientName"),
		MRN:                d.String("mrn"),
		Gender:             d.String("gender"),
		Age:                d.String("age"),
		DOB:                d.String("dob"),
		CollectionDateTime: d.String("collectionDateTime"),
		ResultValidated:    d.String("resultValidated"),
		OrderNumber:        d.String("orderNumber"),
		Location:           d.String("location"),
		Color:              d.LabValue("color"),
		Clarity:            d.LabValue("clarity"),
		Glucose:            d.LabValue("glucose"),
		Bilirubin:          d.LabValue("bilirubin"),
		Ketones:            d.LabValue("ketones"),
		SpecificGravity:    d.LabValue("specific_gravity"),
		Blood:              d.LabValue("blood"),
		PH:                 d.LabValue("ph"),
		Protein:            d.LabValue("protein"),
		Urobilinogen:       d.LabValue("urobilinogen"),
		Nitrite:            d.LabValue("nitrite"),
		LeukocyteEsterase:  d.LabValue("leukocyte_esterase"),
		RBC:                d.LabValue("rbc"),
		WBC:                d.LabValue("wbc"),
		EpithelialCells:    d.LabValue("epithelial_cells"),
		Bacteria:           d.LabValue("bacteria"),
		HyalineCast:        d.LabValue("hyaline_cast"),
		Remarks:            d.LabValue("remarks"),
		FileName:           fileName,
		UploadDate:         now.UTC().Format(time.RFC3339),
	}, nil
}

func buildLipid(d extract.Draft, fileName string, now time.Time) (Record, error) {
	uid, err := DeriveUniqueID(d, fileName)
	if err != nil {
		return nil, err
	}
	tests := make(map[string]LabValue, len(lipidPanelTests))
	for _, key := range lipidPanelTests {
		tests[key] = d.LabValue(key)
	}
	return &LipidRecord{
		UniqueID:           uid,
		PatientName:        d.String("patientName"),
		MRN:                d.String("mrn"),
		Gender:             d.String("gender"),
		Age:                d.String("age"),
		CareProvider:       d.String("careprovider"),
		Location:           d.String("location"),
		DateOfBirth:        d.String("dateOfBirth"),
		CollectionDateTime: d.String("collectionDateTime"),
		ResultValidated:    d.String("resultValidated"),
		TestResults:        tests,
		RiskBand:           LipidRiskBand(tests["total_cholesterol"].Result),
		FileName:           fileName,
		UploadDate:         now.UTC().Format(time.RFC3339),
	}, nil
}

func buildChem(d extract.Draft, fileName string, now time.Time) (Record, error) {
	uid, err := DeriveUniqueID(d, fileName)
	if err != nil {
		return nil, err
	}
	rec := &ChemRecord{
		UniqueID:           uid,
		Name:               d.String("name"),
		MRN:                d.String("mrn"),
		Gender:             d.String("gender"),
		Age:                d.String("age"),
		CareProvider:       d.String("care_provider"),
		Location:           d.String("location"),
		DOB:                d.String("dob"),
		CollectionDateTime: d.String("collection_datetime"),
		ResultValidated:    d.String("result_validated"),
		FileName:           fileName,
		UploadDate:         now.UTC().Format(time.RFC3339),
	}

	// Only tests that actually appeared on the panel become rows; the flat
	// convenience fields mirror the row results.
	for _, t := range chemPanelTests {
		lv := d.LabValue(t.Key)
		if lv.Result == "" {
			continue
		}
		rec.TestResults = append(rec.TestResults, ChemTestResult{
			TestName:       t.Name,
			Result:         lv.Result,
			Unit:           lv.Unit,
			ReferenceRange: lv.ReferenceRange,
		})
		switch t.Key {
		case "fbs":
			rec.FBS = lv.Result
		case "bua":
			rec.BUA = lv.Result
		case "creatinine":
			rec.Creatinine = lv.Result
		case "sgpt":
			rec.SGPT = lv.Result
		case "cholesterol":
			rec.Cholesterol = lv.Result
		case "hdl":
			rec.HDL = lv.Result
		case "ldl":
			rec.LDL = lv.Result
		case "triglycerides":
			rec.Triglycerides = lv.Result
		}
	}
	return rec, nil
}

func buildMedExam(d extract.Draft, fileName string, now time.Time) (Record, error) {
	uid, err := DeriveUniqueID(d, fileName)
	if err != nil {
		return nil, err
	}
	return &MedExamRecord{
		UniqueID:                 uid,
		PatientName:              d.String("patient_name"),
		PID:                      d.String("pid"),
		DateOfBirth:              d.String("date_of_birth"),
		Age:                      d.Int("age"),
		Sex:                      d.String("sex"),
		CivilStatus:              d.String("civil_status"),
		Company:                  d.String("company"),
		Occupation:               d.String("occupation"),
		DateOfExamination:        d.String("date_of_examination"),
		PresentIllness:           d.String("present_illness"),
		FoodAllergy:              d.String("food_allergy"),
		MedicationAllergy:        d.String("medication_allergy"),
		PastConsultation:         d.String("past_consultation"),
		MaintenanceMedications:   d.String("maintenance_medications"),
		PreviousHospitalizations: d.String("previous_hospitalizations"),
		MenstrualHistoryLMP:      d.String("menstrual_history_lmp"),
		ObstetricalHistory:       d.String("obstetrical_history"),
		BloodPressure:            d.String("blood_pressure"),
		Pulse:                    d.String("pulse"),
		SpO2:                     d.String("spo2"),
		RespiratoryRate:          d.String("respiratory_rate"),
		Temperature:              d.String("temperature"),
		Height:                   d.String("height"),
		Weight:                   d.String("weight"),
		BMI:                      d.String("bmi"),
		IBW:                      d.String("ibw"),
		VisionAdequacy:           d.String("vision_adequacy"),
		VisionOD:                 d.String("vision_od"),
		VisionOS:                 d.String("vision_os"),
		CBCResult:                d.String("cbc_result"),
		UrinalysisResult:         d.String("urinalysis_result"),
		BloodChemistryResult:     d.String("blood_chemistry_result"),
		ChestXRayResult:          d.String("chest_xray_result"),
		ECGResult:                d.String("ecg_result"),
		FitnessStatus:            d.String("fitness_status"),
		MedicalClass:             d.String("medical_class"),
		NeedsTreatment:           d.String("needs_treatment"),
		Remarks:                  d.String("remarks"),
		ExaminingPhysician:       d.String("examining_physician"),
		EvaluatingPersonnel:      d.String("evaluating_personnel"),
		PhysicianPRC:             d.String("physician_prc"),
		DateOfInitialPEME:        d.String("date_of_initial_peme"),
		DateOfFitness:            d.String("date_of_fitness"),
		ValidUntil:               d.String("valid_until"),
		HeadOrNeckInjury:         d.String("head_or_neck_injury"),
		FrequentDizziness:        d.String("frequent_dizziness"),
		FaintingSpells:           d.String("fainting_spells"),
		ChronicCough:             d.String("chronic_cough"),
		HeartDisease:             d.String("heart_disease"),
		Hypertension:             d.String("hypertension"),
		Diabetes:                 d.String("diabetes"),
		Asthma:                   d.String("asthma"),
		Epilepsy:                 d.String("epilepsy"),
		MentalDisorder:           d.String("mental_disorder"),
		Tuberculosis:             d.String("tuberculosis"),
		Cancer:                   d.String("cancer"),
		KidneyDisease:            d.String("kidney_disease"),
		Others:                   d.String("others"),
		FileName:                 fileName,
		UploadDate:               now.UTC().Format(time.RFC3339),
	}, nil
}

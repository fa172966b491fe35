package eligibility

import dErrors "benefitscout/pkg/domain-errors"

// ProgramID identifies a program in the fixed catalog.
type ProgramID string

const (
	ProgramSSI           ProgramID = "ssi"
	ProgramSSDI          ProgramID = "ssdi"
	ProgramSNAP          ProgramID = "snap"
	ProgramMedicaid      ProgramID = "medicaid"
	ProgramMedicare      ProgramID = "medicare"
	ProgramACASubsidies  ProgramID = "acaSubsidies"
	ProgramTRICARE       ProgramID = "tricare"
	ProgramVAHealth      ProgramID = "vaHealth"
	ProgramSection8      ProgramID = "section8"
	ProgramPublicHousing ProgramID = "publicHousing"
	ProgramHUDVASH       ProgramID = "hudvash"
	ProgramLIHEAP        ProgramID = "liheap"
	ProgramWIC           ProgramID = "wic"
	ProgramEITC          ProgramID = "eitc"
	ProgramCTC           ProgramID = "ctc"
	ProgramTANF          ProgramID = "tanf"
)

// Catalog lists every program the evaluator knows, in evaluation order.
var Catalog = []ProgramID{
	ProgramSSI,
	ProgramSSDI,
	ProgramSNAP,
	ProgramMedicaid,
	ProgramMedicare,
	ProgramACASubsidies,
	ProgramTRICARE,
	ProgramVAHealth,
	ProgramSection8,
	ProgramPublicHousing,
	ProgramHUDVASH,
	ProgramLIHEAP,
	ProgramWIC,
	ProgramEITC,
	ProgramCTC,
	ProgramTANF,
}

// ParseProgramID validates a program identifier against the catalog.
func ParseProgramID(s string) (ProgramID, error) {
	for _, p := range Catalog {
		if string(p) == s {
			return p, nil
		}
	}
	return "", dErrors.New(dErrors.CodeNotFound, "benefit type not found")
}

func (p ProgramID) String() string {
	return string(p)
}

package domain

// BranchCode identifies one of the fixed logical partitions of a case.
// Branch identity is (case id, code); the code set never varies per case.
type BranchCode string

const (
	BranchAdmin          BranchCode = "ADMIN"
	BranchFacts          BranchCode = "FACT"
	BranchPenal          BranchCode = "PEN"
	BranchCivil          BranchCode = "CIV"
	BranchAdministrative BranchCode = "ADM"
	BranchMedical        BranchCode = "MED"
	BranchExpert         BranchCode = "EXP"
	BranchCorrespondence BranchCode = "COR"
	BranchEvidence       BranchCode = "EVD"
	BranchAnalysis       BranchCode = "ANA"
	BranchStrategy       BranchCode = "STR"
	BranchProcedure      BranchCode = "PRC"
	BranchArchive        BranchCode = "ARC"
)

// IsolationLevel tags how widely a branch's documents may be shared.
type IsolationLevel string

const (
	IsolationStandard   IsolationLevel = "standard"
	IsolationRestricted IsolationLevel = "restricted"
)

// Branch is a logical partition of a case's documents, not a container of
// record: the flat document index is the source of truth and branches are
// filter keys over it. Documents is populated only on enriched reads.
type Branch struct {
	Code      BranchCode     `json:"code"`
	Label     string         `json:"label"`
	Isolation IsolationLevel `json:"isolation"`
	Documents []Document     `json:"documents,omitempty"`
}

// branchDef fixes the label and isolation tag for one code.
type branchDef struct {
	code      BranchCode
	label     string
	isolation IsolationLevel
}

// branchDefs is the fixed enumeration, in display order. Every case carries
// exactly these 13 branches.
var branchDefs = []branchDef{
	{BranchAdmin, "Administration", IsolationStandard},
	{BranchFacts, "Facts", IsolationStandard},
	{BranchPenal, "Penal", IsolationStandard},
	{BranchCivil, "Civil", IsolationStandard},
	{BranchAdministrative, "Administrative", IsolationStandard},
	{BranchMedical, "Medical", IsolationRestricted},
	{BranchExpert, "Expert Reports", IsolationStandard},
	{BranchCorrespondence, "Correspondence", IsolationStandard},
	{BranchEvidence, "Evidence", IsolationStandard},
	{BranchAnalysis, "Analysis", IsolationStandard},
	{BranchStrategy, "Strategy", IsolationRestricted},
	{BranchProcedure, "Procedure", IsolationStandard},
	{BranchArchive, "Archive", IsolationStandard},
}

// BranchCount is the size of the fixed branch enumeration.
const BranchCount = 13

// FixedBranches returns a fresh copy of the 13 fixed branches with empty
// document lists. Callers may attach documents to the returned slice freely.
func FixedBranches() []Branch {
	branches := make([]Branch, len(branchDefs))
	for i, def := range branchDefs {
		branches[i] = Branch{
			Code:      def.code,
			Label:     def.label,
			Isolation: def.isolation,
			Documents: []Document{},
		}
	}
	return branches
}

// ValidBranchCode reports whether code belongs to the fixed enumeration.
func ValidBranchCode(code BranchCode) bool {
	for _, def := range branchDefs {
		if def.code == code {
			return true
		}
	}
	return false
}

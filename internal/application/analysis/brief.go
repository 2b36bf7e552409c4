package analysis

import (
	"encoding/json"
	"strings"
)

// Brief condenses raw PubChem records into the fields the verdict model
// actually needs. Field names double as the JSON keys embedded in the prompt.
type Brief struct {
	Formula              string          `json:"formula,omitempty"`
	MolWeight            string          `json:"mol_weight,omitempty"`
	CanonicalSMILES      string          `json:"canonical_smiles,omitempty"`
	HBondDonors          *int            `json:"hydrogen_bond_donors,omitempty"`
	HBondAcceptors       *int            `json:"hydrogen_bond_acceptors,omitempty"`
	RotatableBonds       *int            `json:"rotatable_bonds,omitempty"`
	XLogP                *float64        `json:"xlogp,omitempty"`
	TPSA                 *float64        `json:"topological_polar_surface_area,omitempty"`
	Classification       string          `json:"classification,omitempty"`
	PharmacologicalClass string          `json:"pharmacological_class,omitempty"`
	MechanismOfAction    string          `json:"mechanism_of_action,omitempty"`
	Assays               []AssayRow      `json:"assays,omitempty"`
	DetectedMechanisms   map[string]bool `json:"detected_mechanisms,omitempty"`
}

// AssayRow is one fibrosis-relevant bioassay result.
type AssayRow struct {
	AID           int64    `json:"aid"`
	Title         string   `json:"title"`
	Outcome       string   `json:"outcome"`
	ActivityValue *float64 `json:"activity_value,omitempty"`
	ActivityUnit  string   `json:"activity_unit,omitempty"`
	AssayType     string   `json:"assay_type,omitempty"`
}

const maxBriefAssays = 15

// fibrosisTerms filters assay titles down to ones plausibly related to
// cardiac fibrosis: direct terms, signaling pathways, cell types, ECM
// components, receptors, epigenetic regulators, known anti-fibrotics and
// cardiomyopathy vocabulary.
var fibrosisTerms = []string{
	"fibro", "cardiac", "heart", "cardio", "myocard",

	"tgf", "transforming growth factor", "smad", "wnt", "mapk", "nf-kb",
	"gsk3", "ctgf", "pdgf", "fgf", "egf", "igf",

	"myofibro", "fibroblast", "epithelial-mesenchymal", "emt",
	"endothelial-mesenchymal", "endmt", "inflamm",

	"collagen", "extracellular matrix", "ecm", "mmp", "timp",
	"fibronectin", "laminin", "elastin", "proteoglycan",

	"integrin", "angiotensin", "aldosterone", "endothelin",
	"thrombospondin", "interleukin", "cytokine", "chemokine",

	"brd4", "brd", "bromodomain", "bet", "epigenetic", "histone",
	"acetyl", "methylation", "chromatin", "hdac", "sirtuin",

	"pirfenidone", "nintedanib", "tranilast", "relaxin",

	"hypertrophy", "cardiomyopathy", "heart failure",
}

type propertyTable struct {
	PropertyTable struct {
		Properties []struct {
			MolecularFormula   string      `json:"MolecularFormula"`
			MolecularWeight    json.Number `json:"MolecularWeight"`
			CanonicalSMILES    string      `json:"CanonicalSMILES"`
			HBondDonorCount    *int        `json:"HBondDonorCount"`
			HBondAcceptorCount *int        `json:"HBondAcceptorCount"`
			RotatableBondCount *int        `json:"RotatableBondCount"`
			XLogP              *float64    `json:"XLogP"`
			TPSA               *float64    `json:"TPSA"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

type classNode struct {
	NodeName       string     `json:"NodeName"`
	CategoryName   string     `json:"CategoryName"`
	ToOne          *classNode `json:"ToOne"`
	AlternateNodes *struct {
		AlternateNode nodeList `json:"AlternateNode"`
	} `json:"AlternateNodes"`
}

// nodeList tolerates PubChem serving a single object where clients expect an
// array.
type nodeList []classNode

func (n *nodeList) UnmarshalJSON(data []byte) error {
	var many []classNode
	if err := json.Unmarshal(data, &many); err == nil {
		*n = many
		return nil
	}
	var one classNode
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*n = nodeList{one}
	return nil
}

type assayTable struct {
	AssayTable struct {
		Rows []struct {
			AID             int64    `json:"AID"`
			Name            string   `json:"Name"`
			ActivityOutcome string   `json:"ActivityOutcome"`
			ActivityValue   *float64 `json:"ActivityValue"`
			ActivityUnit    string   `json:"ActivityUnit"`
			AssayType       string   `json:"AssayType"`
		} `json:"Rows"`
	} `json:"AssayTable"`
}

// Summarize condenses raw PubChem blobs, keyed by their request path, into a
// Brief. Blobs that fail to decode are skipped rather than failing the whole
// evaluation.
func Summarize(records map[string]json.RawMessage) Brief {
	var brief Brief

	for path, blob := range records {
		switch {
		case strings.Contains(path, "/property/"):
			summarizeProperties(blob, &brief)
		case strings.Contains(path, "/classification/"):
			summarizeClassification(blob, &brief)
		case strings.Contains(path, "/assaysummary/"):
			summarizeAssays(blob, &brief)
		}
	}
	return brief
}

func summarizeProperties(blob json.RawMessage, brief *Brief) {
	var pt propertyTable
	if err := json.Unmarshal(blob, &pt); err != nil || len(pt.PropertyTable.Properties) == 0 {
		return
	}
	p := pt.PropertyTable.Properties[0]
	brief.Formula = p.MolecularFormula
	brief.MolWeight = p.MolecularWeight.String()
	brief.CanonicalSMILES = p.CanonicalSMILES
	brief.HBondDonors = p.HBondDonorCount
	brief.HBondAcceptors = p.HBondAcceptorCount
	brief.RotatableBonds = p.RotatableBondCount
	brief.XLogP = p.XLogP
	brief.TPSA = p.TPSA
}

func summarizeClassification(blob json.RawMessage, brief *Brief) {
	var tree struct {
		HierarchicalClassificationTree struct {
			ClassificationNode classNode `json:"ClassificationNode"`
		} `json:"HierarchicalClassificationTree"`
	}
	if err := json.Unmarshal(blob, &tree); err != nil {
		return
	}
	node := tree.HierarchicalClassificationTree.ClassificationNode

	var levels []string
	for cl := node.ToOne; cl != nil && cl.NodeName != "" && len(levels) < 5; cl = cl.ToOne {
		levels = append(levels, cl.NodeName)
	}
	if len(levels) > 0 {
		brief.Classification = strings.Join(levels, " > ")
	}

	if node.AlternateNodes == nil {
		return
	}
	for _, alt := range node.AlternateNodes.AlternateNode {
		switch {
		case strings.Contains(alt.CategoryName, "Pharmacologic"):
			brief.PharmacologicalClass = alt.NodeName
		case strings.Contains(alt.CategoryName, "Mechanism"):
			brief.MechanismOfAction = alt.NodeName
		}
	}
}

func summarizeAssays(blob json.RawMessage, brief *Brief) {
	var at assayTable
	if err := json.Unmarshal(blob, &at); err != nil {
		return
	}

	mechanisms := map[string]bool{}
	var assays []AssayRow

	for _, row := range at.AssayTable.Rows {
		title := strings.ToLower(row.Name)
		active := row.ActivityOutcome == "Active"

		if active && (strings.Contains(title, "brd4") || strings.Contains(title, "bromodomain") || strings.Contains(title, "bet")) {
			mechanisms["BRD4_inhibitor"] = true
		}
		if active && containsAny(title, "anti-fibrotic", "antifibrotic", "fibrosis inhibit") {
			mechanisms["anti_fibrotic"] = true
		}
		if active && (strings.Contains(title, "tgf") || strings.Contains(title, "transforming growth factor")) {
			mechanisms["tgf_beta_modulator"] = true
		}

		if containsAny(title, fibrosisTerms...) {
			assays = append(assays, AssayRow{
				AID:           row.AID,
				Title:         row.Name,
				Outcome:       row.ActivityOutcome,
				ActivityValue: row.ActivityValue,
				ActivityUnit:  row.ActivityUnit,
				AssayType:     row.AssayType,
			})
		}

		// Keep the brief bounded but let active rows push past the cap.
		if len(assays) >= maxBriefAssays && !active {
			break
		}
	}

	if len(assays) > 0 {
		brief.Assays = assays
	}
	if len(mechanisms) > 0 {
		if brief.DetectedMechanisms == nil {
			brief.DetectedMechanisms = map[string]bool{}
		}
		for k := range mechanisms {
			brief.DetectedMechanisms[k] = true
		}
	}
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

package analysis

import (
	"encoding/json"
	"strings"
	"testing"
)

const propertyBlob = `{
  "PropertyTable": {
    "Properties": [{
      "CID": 9804992,
      "MolecularFormula": "C24H27N3O4",
      "MolecularWeight": "421.5",
      "CanonicalSMILES": "CCN(CC)CC1=CC2=C(C=C1)..."
    }]
  }
}`

const classificationBlob = `{
  "HierarchicalClassificationTree": {
    "ClassificationNode": {
      "ToOne": {
        "NodeName": "Organic compounds",
        "ToOne": {
          "NodeName": "Benzenoids",
          "ToOne": {"NodeName": "Naphthalenes"}
        }
      },
      "AlternateNodes": {
        "AlternateNode": [
          {"CategoryName": "Pharmacologic Class", "NodeName": "Histone Deacetylase Inhibitors"},
          {"CategoryName": "Mechanism of Action", "NodeName": "HDAC inhibition"}
        ]
      }
    }
  }
}`

const assayBlob = `{
  "AssayTable": {
    "Rows": [
      {"AID": 1, "Name": "BRD4 bromodomain binding", "ActivityOutcome": "Active", "ActivityValue": 0.05, "ActivityUnit": "uM"},
      {"AID": 2, "Name": "TGF-beta induced collagen deposition", "ActivityOutcome": "Active"},
      {"AID": 3, "Name": "Unrelated kinase panel", "ActivityOutcome": "Inactive"},
      {"AID": 4, "Name": "Cardiac fibroblast activation assay", "ActivityOutcome": "Inactive"}
    ]
  }
}`

func records() map[string]json.RawMessage {
	return map[string]json.RawMessage{
		"/compound/cid/9804992/property/MolecularFormula,MolecularWeight,CanonicalSMILES/JSON": json.RawMessage(propertyBlob),
		"/compound/cid/9804992/classification/JSON":                                            json.RawMessage(classificationBlob),
		"/compound/cid/9804992/assaysummary/JSON":                                              json.RawMessage(assayBlob),
	}
}

func TestSummarizeProperties(t *testing.T) {
	t.Parallel()

	brief := Summarize(records())
	if brief.Formula != "C24H27N3O4" {
		t.Errorf("formula = %q", brief.Formula)
	}
	if brief.MolWeight != "421.5" {
		t.Errorf("mol weight = %q", brief.MolWeight)
	}
	if brief.CanonicalSMILES == "" {
		t.Error("smiles missing")
	}
}

func TestSummarizeClassification(t *testing.T) {
	t.Parallel()

	brief := Summarize(records())
	if !strings.Contains(brief.Classification, "Organic compounds") ||
		!strings.Contains(brief.Classification, "Naphthalenes") {
		t.Errorf("classification = %q", brief.Classification)
	}
	if brief.PharmacologicalClass != "Histone Deacetylase Inhibitors" {
		t.Errorf("pharmacological class = %q", brief.PharmacologicalClass)
	}
	if brief.MechanismOfAction != "HDAC inhibition" {
		t.Errorf("mechanism = %q", brief.MechanismOfAction)
	}
}

func TestSummarizeClassificationSingleAlternateNode(t *testing.T) {
	t.Parallel()

	blob := `{
	  "HierarchicalClassificationTree": {
	    "ClassificationNode": {
	      "AlternateNodes": {
	        "AlternateNode": {"CategoryName": "Pharmacologic Class", "NodeName": "BET Inhibitors"}
	      }
	    }
	  }
	}`
	brief := Summarize(map[string]json.RawMessage{
		"/compound/cid/1/classification/JSON": json.RawMessage(blob),
	})
	if brief.PharmacologicalClass != "BET Inhibitors" {
		t.Errorf("pharmacological class = %q, single-object node not handled", brief.PharmacologicalClass)
	}
}

func TestSummarizeAssaysFiltersAndDetectsMechanisms(t *testing.T) {
	t.Parallel()

	brief := Summarize(records())

	// the unrelated kinase panel row carries no fibrosis term
	if len(brief.Assays) != 3 {
		t.Fatalf("assays = %d, want 3: %+v", len(brief.Assays), brief.Assays)
	}
	for _, a := range brief.Assays {
		if strings.Contains(strings.ToLower(a.Title), "unrelated kinase") {
			t.Errorf("unrelated assay kept: %+v", a)
		}
	}

	if !brief.DetectedMechanisms["BRD4_inhibitor"] {
		t.Error("BRD4_inhibitor not detected")
	}
	if !brief.DetectedMechanisms["tgf_beta_modulator"] {
		t.Error("tgf_beta_modulator not detected")
	}
	if brief.DetectedMechanisms["anti_fibrotic"] {
		t.Error("anti_fibrotic should not be detected")
	}
}

func TestSummarizeEmptyRecords(t *testing.T) {
	t.Parallel()

	brief := Summarize(map[string]json.RawMessage{})
	if brief.Formula != "" || brief.Assays != nil || brief.DetectedMechanisms != nil {
		t.Errorf("empty records should give a zero brief: %+v", brief)
	}
}

func TestSummarizeSkipsCorruptBlobs(t *testing.T) {
	t.Parallel()

	recs := records()
	recs["/compound/cid/9804992/classification/JSON"] = json.RawMessage(`{broken`)
	brief := Summarize(recs)
	if brief.Formula != "C24H27N3O4" {
		t.Error("a corrupt blob must not poison the rest of the brief")
	}
	if brief.Classification != "" {
		t.Errorf("classification = %q, want empty", brief.Classification)
	}
}

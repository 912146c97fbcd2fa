package catalog

import (
	"fmt"

	"github.com/agrodetect/backend/internal/models"
)

// Default returns the built-in English, Hindi and Telugu catalog.
func Default() *Catalog {
	c, err := New(DefaultLanguage, builtinTables())
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in tables are invalid: %v", err))
	}
	return c
}

func builtinTables() map[string][]models.DiseaseRecord {
	return map[string][]models.DiseaseRecord{
		"English": {
			{Key: "powdery_mildew", Designation: "Powdery Mildew", Symptoms: "White powder on leaves.", Treatment: "Spray fungicide.", Prevention: "Avoid overhead watering."},
			{Key: "leaf_spot", Designation: "Leaf Spot", Symptoms: "Brown or black spots.", Treatment: "Use copper fungicide.", Prevention: "Remove infected leaves."},
			{Key: "rust", Designation: "Rust Disease", Symptoms: "Orange rust spots.", Treatment: "Sulfur fungicide.", Prevention: "Improve air flow."},
			{Key: "bacterial_blight", Designation: "Bacterial Blight", Symptoms: "Water soaked lesions.", Treatment: "Antibacterial spray.", Prevention: "Avoid wet leaves."},
			{Key: "early_blight", Designation: "Early Blight", Symptoms: "Dark concentric rings.", Treatment: "Neem oil or fungicide.", Prevention: "Crop rotation."},
			{Key: "healthy", Designation: "Healthy Leaf", Symptoms: "No disease signs.", Treatment: "No treatment needed.", Prevention: "Maintain proper care."},
		},
		"Hindi": {
			{Key: "powdery_mildew", Designation: "पाउडरी मिल्ड्यू", Symptoms: "सफेद पाउडर जैसे धब्बे।", Treatment: "फंगिसाइड छिड़कें।", Prevention: "ऊपर से पानी न डालें।"},
			{Key: "leaf_spot", Designation: "लीफ स्पॉट", Symptoms: "भूरे/काले धब्बे।", Treatment: "कॉपर फंगिसाइड।", Prevention: "संक्रमित पत्ते हटाएं।"},
			{Key: "rust", Designation: "रस्ट रोग", Symptoms: "नारंगी जंग जैसे धब्बे।", Treatment: "सल्फर फंगिसाइड।", Prevention: "हवा का संचार बढ़ाएं।"},
			{Key: "healthy", Designation: "स्वस्थ पत्ता", Symptoms: "कोई रोग नहीं।", Treatment: "उपचार आवश्यक नहीं।", Prevention: "नियमित देखभाल।"},
		},
		"Telugu": {
			{Key: "powdery_mildew", Designation: "పౌడరీ మిల్డ్యూ", Symptoms: "తెల్లటి పొడి మచ్చలు.", Treatment: "ఫంగిసైడ్ వాడండి.", Prevention: "పై నుండి నీరు పోయవద్దు."},
			{Key: "leaf_spot", Designation: "లీఫ్ స్పాట్", Symptoms: "గోధుమ/నల్ల మచ్చలు.", Treatment: "కాపర్ ఫంగిసైడ్.", Prevention: "బాధిత ఆకులు తొలగించండి."},
			{Key: "rust", Designation: "రస్ట్ వ్యాధి", Symptoms: "నారింజ రంగు మచ్చలు.", Treatment: "సల్ఫర్ ఫంగిసైడ్.", Prevention: "గాలి ప్రవాహం పెంచండి."},
			{Key: "healthy", Designation: "ఆరోగ్యమైన ఆకు", Symptoms: "ఎటువంటి వ్యాధి లేదు.", Treatment: "చికిత్స అవసరం లేదు.", Prevention: "సరైన సంరక్షణ."},
		},
	}
}

package ai

import "strings"

// Fallback content theo ngôn ngữ. Bắt buộc non-empty cho mọi ngôn ngữ hỗ trợ,
// ngôn ngữ lạ rơi về tiếng Anh.

var fallbackTranscripts = map[string]string{
	"en": "Today's special is something you don't want to miss. Fresh ingredients, made with love.",
	"fr": "Le plat du jour est à ne pas manquer. Des ingrédients frais, préparés avec amour.",
	"es": "El especial de hoy es algo que no te puedes perder. Ingredientes frescos, hechos con amor.",
}

var fallbackVisualDescriptions = map[string]string{
	"en": "A beautifully plated dish, vibrant and appetizing, ready to be enjoyed.",
	"fr": "Un plat magnifiquement dressé, coloré et appétissant, prêt à être savouré.",
	"es": "Un plato bellamente presentado, vibrante y apetitoso, listo para disfrutar.",
}

var fallbackCaptions = map[string]map[string]string{
	"instagram": {
		"en": "Fresh from our kitchen to your feed. Come taste what everyone is talking about! 🍽️",
		"fr": "Tout droit de notre cuisine à votre fil. Venez goûter ce dont tout le monde parle! 🍽️",
		"es": "Directo de nuestra cocina a tu feed. ¡Ven a probar de lo que todos hablan! 🍽️",
	},
	"short_video": {
		"en": "You have to see this dish to believe it 👀🔥",
		"fr": "Il faut voir ce plat pour le croire 👀🔥",
		"es": "Tienes que ver este plato para creerlo 👀🔥",
	},
	"feed_post": {
		"en": "There is always something delicious happening in our kitchen. Stop by today and treat yourself!",
		"fr": "Il se passe toujours quelque chose de délicieux dans notre cuisine. Passez nous voir aujourd'hui!",
		"es": "Siempre hay algo delicioso pasando en nuestra cocina. ¡Visítanos hoy y date un gusto!",
	},
}

var fallbackTags = map[string][]string{
	"instagram":   {"foodie", "instafood", "freshfood", "localrestaurant"},
	"short_video": {"foodtok", "viralfood", "musttry"},
	"feed_post":   {"restaurant", "goodfood", "community"},
}

// normalizeLang rút gọn language tag về 2 ký tự, không hỗ trợ thì về "en"
func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if len(lang) >= 2 {
		lang = lang[:2]
	}
	if _, ok := fallbackTranscripts[lang]; !ok {
		return "en"
	}
	return lang
}

// FallbackTranscription trả về transcription fallback theo ngôn ngữ
func FallbackTranscription(language string, class FailureClass) Transcription {
	lang := normalizeLang(language)
	return Transcription{
		Text:         fallbackTranscripts[lang],
		Language:     lang,
		Fallback:     true,
		FailureClass: class,
	}
}

// FallbackVisualDescription trả về mô tả hình ảnh mặc định theo ngôn ngữ
func FallbackVisualDescription(language string, class FailureClass) VisualDescription {
	return VisualDescription{
		Text:         fallbackVisualDescriptions[normalizeLang(language)],
		Fallback:     true,
		FailureClass: class,
	}
}

// FallbackDraft trả về draft chuẩn cho một platform/ngôn ngữ
func FallbackDraft(platform, language string) PlatformDraft {
	lang := normalizeLang(language)
	captions, ok := fallbackCaptions[platform]
	if !ok {
		captions = fallbackCaptions["feed_post"]
	}
	tags := fallbackTags[platform]
	if tags == nil {
		tags = fallbackTags["feed_post"]
	}

	return PlatformDraft{
		Platform:      platform,
		Caption:       captions[lang],
		Tags:          append([]string(nil), tags...),
		ViralityScore: 50,
		BestPostTime:  "18:00",
		Fallback:      true,
	}
}

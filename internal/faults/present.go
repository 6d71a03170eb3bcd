package faults

import "github.com/vietddude/readflow/internal/core/domain"

// Fixed user-facing messages per kind and language. Raw error text is never
// shown to users; it stays in diagnostic logs only.
var messages = map[domain.Lang]map[Kind]string{
	domain.LangEnglish: {
		KindNetwork:        "Connection problem. Please check your network and try again.",
		KindTimeout:        "The request took too long. Please try again.",
		KindUnauthorized:   "You need to sign in to continue.",
		KindForbidden:      "You do not have access to this content.",
		KindNotFound:       "The requested content was not found.",
		KindRateLimited:    "Too many requests. Please wait a moment and try again.",
		KindBadRequest:     "The request could not be processed.",
		KindServerError:    "Something went wrong on our side. Please try again shortly.",
		KindGeneral:        "An unexpected error occurred. Please try again.",
		KindPostList:       "Could not load posts. Please try again.",
		KindRecommendation: "Could not load related content.",
	},
	domain.LangPersian: {
		KindNetwork:        "مشکل در اتصال. لطفاً اینترنت خود را بررسی کرده و دوباره تلاش کنید.",
		KindTimeout:        "پاسخ‌دهی بیش از حد طول کشید. لطفاً دوباره تلاش کنید.",
		KindUnauthorized:   "برای ادامه باید وارد حساب کاربری شوید.",
		KindForbidden:      "شما به این محتوا دسترسی ندارید.",
		KindNotFound:       "محتوای مورد نظر یافت نشد.",
		KindRateLimited:    "درخواست‌های بیش از حد. لطفاً کمی صبر کنید و دوباره تلاش کنید.",
		KindBadRequest:     "درخواست قابل پردازش نیست.",
		KindServerError:    "خطایی در سمت ما رخ داده است. لطفاً کمی بعد دوباره تلاش کنید.",
		KindGeneral:        "خطای غیرمنتظره‌ای رخ داد. لطفاً دوباره تلاش کنید.",
		KindPostList:       "بارگذاری مطالب ممکن نشد. لطفاً دوباره تلاش کنید.",
		KindRecommendation: "بارگذاری مطالب مرتبط ممکن نشد.",
	},
}

// Present returns the localized user-facing message for an error. It never
// fails: unmatched errors fall back to the message for fallback, then to the
// general message, then to English.
func Present(err error, fallback Kind, lang domain.Lang) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[domain.LangEnglish]
	}

	kind := Classify(err)
	if msg, ok := table[kind]; ok && kind != KindGeneral {
		return msg
	}
	if msg, ok := table[fallback]; ok {
		return msg
	}
	return table[KindGeneral]
}

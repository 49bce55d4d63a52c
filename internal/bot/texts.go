// internal/bot/texts.go
package bot

import (
	"fmt"
	"strconv"
)

const startText = "Agar qorin va bel ketmayotgan bo‘lsa,\n" +
	"muammo sizda emas.\n\n" +
	"Bu 30 kunlik aniq tizim.\n" +
	"Ko‘pchilik 7–10 kundan keyin farqni sezadi.\n\n" +
	"Boshlash uchun ismingizni yozing 👇"

const (
	alreadyOnboardedText = "Siz allaqachon boshlagansiz. Davom etamiz! 👇"
	askSurnameText       = "Familiyangizni kiriting:"
	askAgeText           = "Yoshingizni kiriting:"
	askWeightText        = "Vazningizni kiriting (kg):"
	badAgeText           = "Iltimos, yoshingizni 10 dan 100 gacha son bilan kiriting:"
	badWeightText        = "Iltimos, vazningizni 30 dan 300 kg gacha son bilan kiriting:"
	onboardedText        = "Boshladik!"

	noUserText       = "Iltimos, /start buyrug‘i bilan ro‘yxatdan o‘ting."
	helpText         = "30 kunlik ozish dasturi boti. /start — boshlash, menyudan kunlarni oching."
	askQuestionText  = "Savolingizni yozing:"
	questionSentText = "✅ Savolingiz yuborildi"

	receiptAcceptedText  = "Chek yuborildi. Tasdiqlanishini kuting"
	noPendingPaymentText = "Hozircha to‘lov kutilmayapti. Avval kerakli kunni oching."
	quietHoursText       = "⛔️ Bot faqat 06:30 dan 22:30 gacha ishlaydi.\nIltimos, shu vaqt oralig‘ida qayta urinib ko‘ring."

	tokenRedeemedText = "✅ Token qabul qilindi, foydalanuvchiga xabar yuborildi"
	tokenUnknownText  = "❌ Token topilmadi yoki allaqachon ishlatilgan"
)

func lockedNoticeText(day int) string {
	return fmt.Sprintf("⏳ %d-kun hali ochilmagan. Avval joriy kunni tugating.", day)
}

func paywallText(stage, price int, cardNumber string) string {
	return fmt.Sprintf(
		"🔒 %d-kundan boshlab yopiq\n\n"+
			"Ochish narxi: %s so‘m\n"+
			"Karta: %s\n\n"+
			"📸 Chekni rasm qilib botga yuboring\n"+
			"(promo-kod bo‘lsa, rasm izohiga yozing)",
		stage, formatPrice(price), cardNumber)
}

func resultText(currentDay int) string {
	switch {
	case currentDay <= 2:
		return "Tanangiz moslashmoqda."
	case currentDay <= 5:
		return "Birinchi o‘zgarishlar boshlandi."
	default:
		return "Natija mustahkamlanmoqda."
	}
}

// formatPrice renders 12000 as "12 000".
func formatPrice(price int) string {
	s := strconv.Itoa(price)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	return string(out)
}

package bot

// All user-facing bot messages in one place.

// ── /start & /help ──────────────────────────────────────────────────

const msgStart = `<b>Вітаю у Svitlo Board!</b>

Я надсилаю графіки відключень електроенергії для вашої групи: коли світла не буде, на скільки, і коли графік змінюється.

/subscribe - Підписатися на групу відключень
/unsubscribe - Скасувати підписку
/today - Графік на сьогодні
/help - Детальніше`

const msgHelp = `<b>Як це працює:</b>

1. Використайте /subscribe та оберіть свій регіон
2. Оберіть групу відключень (вона вказана у вашому особистому кабінеті обленерго)
3. Я одразу надішлю графік на сьогодні
4. Коли графік оновлюється — я надсилаю новий автоматично, без дублікатів

<b>Позначення:</b>
🔴 — світла немає
🟢 — відключень не заплановано
⚠️ — графік ще може змінитися

<b>Команди:</b>
/today — графік на сьогодні для ваших підписок
/subscribe — додати підписку (можна кілька)
/unsubscribe — прибрати підписку`

// ── Generic / errors ────────────────────────────────────────────────

const (
	msgError         = "Щось пішло не так. Спробуйте пізніше."
	msgInvalidFormat = "Невірний формат"
	msgFetchError    = "Помилка отримання даних"
	msgUnknownAction = "Невідома дія"
)

// ── /subscribe & /unsubscribe ───────────────────────────────────────

const (
	msgSubscribeRegion = "<b>Оберіть регіон:</b>"
	msgSubscribeGroup  = "<b>Оберіть групу відключень:</b>"
	msgNoGroupsToday   = "На сьогодні немає даних по групах цього регіону. Спробуйте пізніше."
	msgSubscribed      = "✅ Підписку оформлено: група <b>%s</b>, регіон <b>%s</b>.\n\nНові графіки надходитимуть автоматично."

	msgNoSubscriptions   = "У вас ще немає підписок.\n\nДодайте першу через /subscribe"
	msgUnsubscribeChoose = "<b>Оберіть підписку для скасування:</b>"
	msgUnsubscribed      = "Підписку скасовано."
	msgUnsubscribedShort = "Скасовано"
)

// ── Digest rendering ────────────────────────────────────────────────

const (
	msgDigestHeader      = "⚡️ <b>Графік відключень</b>\n%s, група <b>%s</b>\n\n"
	msgDigestNoData      = "ℹ️ Даних про відключення на сьогодні ще немає."
	msgDigestNoGroupData = "ℹ️ Для цієї групи на сьогодні даних немає. Відключення не заплановані."
	msgDigestNoOutages   = "🟢 Відключень не заплановано."
	msgDigestOutageLine  = "🔴 %s\n"
	msgDigestTotal       = "\nВсього без світла: %s\n"
	msgDigestMaybeNote   = "\n⚠️ Частина графіка ще не підтверджена, можливі зміни."
	msgDigestOverlap     = "\n⚠️ Одночасні відключення груп %s: %s"
	msgDigestUpdated     = "\n\n<i>Оновлено: %s</i>"

	msgRegionFetchError = "Не вдалося отримати графік для регіону %s. Спробуйте пізніше."
)

// ── Overlap alert ───────────────────────────────────────────────────

const (
	msgOverlapHeader = "🚨 <b>Одночасні відключення</b>\n%s\n\n"
	msgOverlapGroups = "Групи %s будуть без світла одночасно:\n\n"
	msgOverlapHint   = "\nПодбайте про резервне живлення заздалегідь."
)

package console

import "github.com/Zhima-Mochi/paychain/internal/application/validation"

var Russian = Catalog{
	validation.MsgTransferInitiated:     "инициирована транзакция по переводу денежных средств\nсо счёта %s на счёт %s",
	validation.MsgRequisitesChecking:    "проверяем правильность указанных данных по счёту отправителя и получателя...",
	validation.MsgRequisitesInvalid:     "данные по счёту отправителя или получателя указаны неверно!",
	validation.MsgFundsChecking:         "проверяем наличие достаточного количества денежных средств на счету отправителя (c учётом комиссии, разумеется)...",
	validation.MsgFundsInsufficient:     "на счету отправителя недостаточно средств!",
	validation.MsgBaseDone:              "базовый обработчик платежа выполнен.",
	validation.MsgMonitoringStarted:     "запускаем дополнительную проверку счетов по процедуре фин.мониторинга...",
	validation.MsgMonitoringFlagged:     "фин.мониторинг требует дополнительного внимания к платежу.",
	validation.MsgMonitoringDone:        "обработчик финмониторинга суммы от %s выполнен.",
	validation.MsgMonitoringUnavailable: "фин.мониторинг недоступен, проверка пропущена.",
	validation.MsgHistoryChecking:       "проверяем дату прошлого платежа...",
	validation.MsgHistoryOK:             "всё ОК...",
	validation.MsgSuspiciousDetected:    "обнаружена подозрительная активность!",
	validation.MsgHistoryUnavailable:    "дата прошлого платежа недоступна, проверка пропущена.",
	validation.MsgSuspiciousDone:        "обработчик подозрительной активности выполнен.",
	validation.MsgCommentChecking:       "проверяем наличие комментария к платежу...",
	validation.MsgCommentAbsent:         "комментария нет!!",
	validation.MsgCommentPresent:        "комментарий есть!",
	validation.MsgTransactionSucceeded:  "транзакция прошла успешно, хорошего дня!",
}

var English = Catalog{
	validation.MsgTransferInitiated:     "transfer initiated\nfrom account %s to account %s",
	validation.MsgRequisitesChecking:    "checking sender and receiver account details...",
	validation.MsgRequisitesInvalid:     "sender or receiver account details are invalid!",
	validation.MsgFundsChecking:         "checking the sender has enough funds (fees included)...",
	validation.MsgFundsInsufficient:     "sender has insufficient funds!",
	validation.MsgBaseDone:              "base payment handler done.",
	validation.MsgMonitoringStarted:     "running additional financial monitoring checks...",
	validation.MsgMonitoringFlagged:     "financial monitoring asks for extra attention on this payment.",
	validation.MsgMonitoringDone:        "monitoring handler for amounts above %s done.",
	validation.MsgMonitoringUnavailable: "financial monitoring unavailable, check skipped.",
	validation.MsgHistoryChecking:       "checking the date of the previous payment...",
	validation.MsgHistoryOK:             "all OK...",
	validation.MsgSuspiciousDetected:    "suspicious activity detected!",
	validation.MsgHistoryUnavailable:    "previous payment date unavailable, check skipped.",
	validation.MsgSuspiciousDone:        "suspicious activity handler done.",
	validation.MsgCommentChecking:       "checking the payment comment...",
	validation.MsgCommentAbsent:         "no comment!!",
	validation.MsgCommentPresent:        "comment present!",
	validation.MsgTransactionSucceeded:  "transaction succeeded, have a nice day!",
}

package database

// DefaultSummaryQuery is the seeded daily-summary query. It must
// produce exactly twelve result sets in the order the summary reader
// consumes them; each statement is numbered to keep the positional
// contract visible when the text is edited.
const DefaultSummaryQuery = `
SET DATEFORMAT YMD;
DECLARE @Hoy DATE = GETDATE();
DECLARE @FechaDesde VARCHAR(19) = CONVERT(CHAR(10), @Hoy, 126) + ' 00:00:00';
DECLARE @FechaHasta VARCHAR(19) = CONVERT(CHAR(10), @Hoy, 126) + ' 23:59:59';
DECLARE @Hace30Dias DATE = DATEADD(day, -30, @Hoy);
DECLARE @Hace12Meses DATE = DATEADD(month, -12, DATEFROMPARTS(YEAR(@Hoy), MONTH(@Hoy), 1));
DECLARE @IVA DECIMAL(28,4) = ISNULL(((SELECT MtoTax FROM SATAXES WHERE CodTaxs = 'IVA') / 100.0) + 1.0, 1.0);

SELECT TOP 1 RTRIM(Descrip) AS NombreEmpresa FROM SACONF; -- 1
SELECT TipoFac AS Documento, COUNT(TipoFac) AS Cantidad, SUM(MtoTotal - ISNULL(RetenIVA, 0)) AS MontoBruto FROM SAFACT WHERE ISNULL(CodOper, '') <> 'IN' AND TipoFac IN ('A', 'B', 'C', 'D') AND FechaE BETWEEN @FechaDesde AND @FechaHasta GROUP BY TipoFac ORDER BY TipoFac ASC; -- 2
SELECT SUM(CASE WHEN TipoFac = 'A' THEN MtoTotal - ISNULL(RetenIVA, 0) ELSE 0 END) - SUM(CASE WHEN TipoFac = 'B' THEN MtoTotal - ISNULL(RetenIVA, 0) ELSE 0 END) AS VentasNetas FROM SAFACT WHERE ISNULL(CodOper, '') <> 'IN' AND TipoFac IN ('A', 'B') AND FechaE BETWEEN @FechaDesde AND @FechaHasta; -- 3
SELECT SUM(CASE WHEN TipoFac = 'C' THEN MtoTotal - ISNULL(RetenIVA, 0) ELSE 0 END) - SUM(CASE WHEN TipoFac = 'D' THEN MtoTotal - ISNULL(RetenIVA, 0) ELSE 0 END) AS NotasEntregaNetas FROM SAFACT WHERE ISNULL(CodOper, '') <> 'IN' AND TipoFac IN ('C', 'D') AND FechaE BETWEEN @FechaDesde AND @FechaHasta; -- 4
SELECT SUM(CASE WHEN SF.TipoFac = 'A' THEN ISNULL(SF.ImpuestoD, 0) ELSE 0 END) - SUM(CASE WHEN SF.TipoFac = 'B' THEN ISNULL(SF.ImpuestoD, 0) ELSE 0 END) AS IGTF_Neto FROM SAFACT SF WHERE ISNULL(SF.CodOper, '') <> 'IN' AND SF.TipoFac IN ('A', 'B') AND SF.FechaE BETWEEN @FechaDesde AND @FechaHasta; -- 5
SELECT SUM(CASE WHEN SF.TipoFac IN ('A', 'C') THEN ISNULL(SF.Descto1, 0) WHEN SF.TipoFac IN ('B', 'D') THEN -ISNULL(SF.Descto1, 0) ELSE 0 END) * @IVA AS DescuentosNetos FROM SAFACT SF WHERE SF.FechaE BETWEEN @FechaDesde AND @FechaHasta AND SF.TipoFac IN ('A', 'B', 'C', 'D'); -- 6
SELECT SUM(ISNULL(Saldo, 0) / CASE WHEN ISNULL(Factor, 1) = 0 THEN 1 ELSE Factor END) AS CuentasPorCobrarHoy FROM SAACXC WHERE FechaE BETWEEN @FechaDesde AND @FechaHasta; -- 7
SELECT ISNULL(SI.tipofac, 'N/A') AS TipoDocumento, SI.CodTarj, ST.Descrip AS Instrumento, SUM(SI.monto) AS MontoTotalPago FROM SAIPAVTA SI INNER JOIN SATARJ ST ON SI.CodTarj = ST.CodTarj WHERE SI.FechaE BETWEEN @FechaDesde AND @FechaHasta GROUP BY ISNULL(SI.tipofac, 'N/A'), SI.CodTarj, ST.Descrip ORDER BY TipoDocumento, MontoTotalPago DESC; -- 8
SELECT TOP 10 CodItem, Descrip1 AS Producto, SUM(CASE WHEN TipoFac IN ('A', 'C') THEN Cantidad ELSE -Cantidad END) AS CantidadNeta FROM SAITEMFAC WHERE FechaE BETWEEN @FechaDesde AND @FechaHasta AND TipoFac IN ('A', 'B', 'C', 'D') GROUP BY CodItem, Descrip1 HAVING SUM(CASE WHEN TipoFac IN ('A', 'C') THEN Cantidad ELSE -Cantidad END) > 0 ORDER BY CantidadNeta DESC; -- 9
SELECT TOP 10 CodItem, Descrip1 AS Producto, SUM(CASE WHEN TipoFac IN ('A', 'C') THEN TotalItem ELSE -TotalItem END) AS MontoNeto FROM SAITEMFAC WHERE FechaE BETWEEN @FechaDesde AND @FechaHasta AND TipoFac IN ('A', 'B', 'C', 'D') GROUP BY CodItem, Descrip1 HAVING SUM(CASE WHEN TipoFac IN ('A', 'C') THEN TotalItem ELSE -TotalItem END) > 0 ORDER BY MontoNeto DESC; -- 10
SELECT CONVERT(DATE, FechaE) AS Dia, SUM(CASE WHEN TipoFac = 'A' THEN MtoTotal - ISNULL(RetenIVA, 0) WHEN TipoFac = 'B' THEN -(MtoTotal - ISNULL(RetenIVA, 0)) ELSE 0 END) AS VentaNetaDiaria, SUM(CASE WHEN TipoFac = 'C' THEN MtoTotal - ISNULL(RetenIVA, 0) WHEN TipoFac = 'D' THEN -(MtoTotal - ISNULL(RetenIVA, 0)) ELSE 0 END) AS NotaNetaDiaria FROM SAFACT WHERE ISNULL(CodOper, '') <> 'IN' AND TipoFac IN ('A', 'B', 'C', 'D') AND FechaE >= @Hace30Dias AND FechaE < DATEADD(day, 1, @Hoy) GROUP BY CONVERT(DATE, FechaE) ORDER BY Dia ASC; -- 11
SELECT FORMAT(FechaE, 'yyyy-MM') AS MesAno, SUM(CASE WHEN TipoFac = 'A' THEN MtoTotal - ISNULL(RetenIVA, 0) WHEN TipoFac = 'B' THEN -(MtoTotal - ISNULL(RetenIVA, 0)) ELSE 0 END) AS VentaNetaMensual FROM SAFACT WHERE ISNULL(CodOper, '') <> 'IN' AND TipoFac IN ('A', 'B') AND FechaE >= @Hace12Meses AND FechaE < DATEFROMPARTS(YEAR(@Hoy), MONTH(@Hoy), 1) GROUP BY FORMAT(FechaE, 'yyyy-MM') ORDER BY MesAno ASC; -- 12
`
